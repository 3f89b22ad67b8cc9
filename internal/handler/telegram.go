package handler

import (
	"strconv"
	"strings"
	"time"

	"tablebot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram wires incoming bot updates into the conversation engine. All
// flow decisions live in the engine; this layer only adapts the transport.
type Telegram struct {
	bot    *tele.Bot
	engine *service.Engine
	logger *zap.Logger
}

// NewTelegram creates the Telegram transport handler
func NewTelegram(bot *tele.Bot, engine *service.Engine, logger *zap.Logger) *Telegram {
	return &Telegram{bot: bot, engine: engine, logger: logger}
}

// Register registers all bot handlers
func (h *Telegram) Register() {
	// Slash commands reach the engine like any other text; the engine
	// strips the slash itself
	h.bot.Handle("/start", h.handleText)
	h.bot.Handle("/restart", h.handleText)
	h.bot.Handle("/cancel", h.handleText)
	h.bot.Handle("/help", h.handleText)
	h.bot.Handle("/menu", h.handleText)
	h.bot.Handle(tele.OnText, h.handleText)
}

// handleText forwards one message to the engine and sends back its reply
func (h *Telegram) handleText(c tele.Context) error {
	userID := strconv.FormatInt(c.Sender().ID, 10)
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	reply, err := h.engine.HandleMessage(userID, text, time.Now())
	if err != nil {
		h.logger.Error("failed to handle message",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		// reply still carries the localized apology; fall through and send it
	}
	return c.Send(reply, tele.ModeMarkdown)
}
