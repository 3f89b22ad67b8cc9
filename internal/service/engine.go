package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tablebot/internal/catalog"
	"tablebot/internal/config"
	"tablebot/internal/domain"
	"tablebot/internal/i18n"
	"tablebot/internal/repository"
)

// globalCommands is the vocabulary handled before step dispatch. Leading
// slashes are stripped, so "/restart" and "restart" behave the same.
var globalCommands = map[string]bool{
	"hi": true, "hello": true, "hey": true, "start": true, "vanakkam": true,
	"restart": true, "cancel": true, "stop": true,
	"help": true, "menu": true,
	"tamil": true, "english": true,
}

func isGlobalCommand(raw string) bool {
	return globalCommands[normalizeCommand(raw)]
}

func normalizeCommand(raw string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "/")
}

// Engine drives the reservation conversation. One incoming message maps
// to exactly one reply; all session mutation happens under the per-user
// lock so concurrent duplicate messages cannot double-advance a step.
type Engine struct {
	sessions     repository.SessionStore
	reservations *ReservationService
	validator    *Validator
	table        *i18n.Table
	cfg          *config.Config
	logger       *zap.Logger
}

// NewEngine creates the conversation engine
func NewEngine(
	sessions repository.SessionStore,
	reservations *ReservationService,
	validator *Validator,
	table *i18n.Table,
	cfg *config.Config,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		sessions:     sessions,
		reservations: reservations,
		validator:    validator,
		table:        table,
		cfg:          cfg,
		logger:       logger,
	}
}

// HandleMessage processes one inbound message and returns the reply text.
// A non-nil error means an internal failure; the returned text is then a
// localized generic apology the transport can still deliver.
func (e *Engine) HandleMessage(userID, raw string, now time.Time) (string, error) {
	release := e.sessions.Acquire(userID)
	defer release()

	sess, err := e.sessions.Get(userID)
	if errors.Is(err, repository.ErrNotFound) {
		return e.startSession(userID, now)
	}
	if err != nil {
		return e.table.Render(e.cfg.DefaultLanguage, i18n.SlotErrorGeneric), fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(now, e.cfg.SessionTimeout) {
		e.logger.Info("session expired, starting fresh",
			zap.String("user_id", userID),
			zap.Time("last_active", sess.LastActiveAt))
		if err := e.sessions.Delete(userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return e.table.Render(sess.Language, i18n.SlotErrorGeneric), fmt.Errorf("delete expired session: %w", err)
		}
		return e.startSession(userID, now)
	}

	if reply, handled, err := e.handleCommand(sess, raw, now); handled {
		return reply, err
	}

	return e.handleStep(sess, raw, now)
}

// startSession creates a fresh session and greets the user
func (e *Engine) startSession(userID string, now time.Time) (string, error) {
	sess := domain.NewSession(userID, e.cfg.DefaultLanguage, now)
	if err := e.sessions.Create(sess); err != nil {
		return e.table.Render(sess.Language, i18n.SlotErrorGeneric), fmt.Errorf("create session: %w", err)
	}
	e.logger.Info("session started", zap.String("user_id", userID))
	return e.table.Render(sess.Language, i18n.SlotGreet, e.cfg.RestaurantName), nil
}

// handleCommand checks the global command vocabulary. It reports whether
// the message was consumed as a command.
func (e *Engine) handleCommand(sess *domain.Session, raw string, now time.Time) (string, bool, error) {
	cmd := normalizeCommand(raw)
	if !globalCommands[cmd] {
		return "", false, nil
	}

	switch cmd {
	case "hi", "hello", "hey", "start", "vanakkam":
		// At the greeting step a "hi" is just the first message, and after
		// DONE it opens a new booking; let the step handler take it.
		// Mid-flow it re-displays the open prompt.
		if sess.Step == domain.StepGreeting || sess.Step == domain.StepDone {
			return "", false, nil
		}
		reply := e.table.Render(sess.Language, i18n.SlotResume, e.promptFor(sess))
		return reply, true, e.touch(sess, now)

	case "restart":
		sess.Restart(now)
		reply := e.table.Render(sess.Language, i18n.SlotRestarted,
			e.table.Render(sess.Language, i18n.SlotGreet, e.cfg.RestaurantName))
		return reply, true, e.update(sess)

	case "cancel", "stop":
		// After a confirmation the session still names the reservation it
		// produced; cancelling in that window voids the booking itself.
		if sess.Step == domain.StepDone && sess.ReservationID != "" {
			return e.cancelConfirmed(sess, now)
		}
		if err := e.sessions.Delete(sess.UserID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return e.table.Render(sess.Language, i18n.SlotErrorGeneric), true, fmt.Errorf("delete session: %w", err)
		}
		e.logger.Info("booking abandoned", zap.String("user_id", sess.UserID), zap.String("step", string(sess.Step)))
		return e.table.Render(sess.Language, i18n.SlotCancelled), true, nil

	case "help":
		reply := e.table.Render(sess.Language, i18n.SlotHelp, e.cfg.RestaurantName, e.cfg.RestaurantPhone)
		return reply, true, e.touch(sess, now)

	case "menu":
		reply := e.table.Render(sess.Language, i18n.SlotMenuReference, menuList(sess.Language))
		return reply, true, e.touch(sess, now)

	case "tamil", "english":
		sess.Language = domain.LangEnglish
		if cmd == "tamil" {
			sess.Language = domain.LangTamil
		}
		sess.Touch(now)
		reply := e.table.Render(sess.Language, i18n.SlotLanguageSet, e.promptFor(sess))
		return reply, true, e.update(sess)
	}
	return "", false, nil
}

// handleStep dispatches the message to the validator for the current step.
// A rejection replies with the step-specific reason and leaves the session
// where it is; an accepted answer stores the value and advances.
func (e *Engine) handleStep(sess *domain.Session, raw string, now time.Time) (string, error) {
	lang := sess.Language

	switch sess.Step {
	case domain.StepGreeting:
		sess.Step = domain.StepName
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotAskName), e.update(sess)

	case domain.StepName:
		name, reason := e.validator.ParseName(raw)
		if reason != ReasonNone {
			return e.rejectName(sess, reason, now)
		}
		sess.Answers.Name = name
		sess.Step = domain.StepPartySize
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotAskParty, name), e.update(sess)

	case domain.StepPartySize:
		n, reason := e.validator.ParsePartySize(raw)
		if reason != ReasonNone {
			return e.rejectParty(sess, reason, now)
		}
		sess.Answers.PartySize = n
		sess.Step = domain.StepDate
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotAskDate), e.update(sess)

	case domain.StepDate:
		date, reason := e.validator.ParseDate(raw, now)
		if reason != ReasonNone {
			return e.rejectDate(sess, reason, now)
		}
		sess.Answers.Date = date
		sess.Step = domain.StepTime
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotAskTime, e.cfg.OpeningHour, e.cfg.ClosingHour), e.update(sess)

	case domain.StepTime:
		t, reason := e.validator.ParseTime(raw)
		if reason != ReasonNone {
			return e.rejectTime(sess, reason, now)
		}
		sess.Answers.Time = t
		sess.Answers.HasTime = true
		sess.Step = domain.StepEvent
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotAskEvent), e.update(sess)

	case domain.StepEvent:
		event, known := e.validator.ParseEvent(raw)
		sess.Answers.Event = event
		sess.Answers.EventKnown = known
		sess.Step = domain.StepMenu
		sess.Touch(now)

		ask := e.table.Render(lang, i18n.SlotAskMenu, menuList(lang))
		var ack string
		if rec, ok := catalog.RecommendationFor(event); ok {
			msg := rec.MessageEN
			if lang == domain.LangTamil {
				msg = rec.MessageTA
			}
			ack = e.table.Render(lang, i18n.SlotEventAck, event, msg)
		} else {
			ack = e.table.Render(lang, i18n.SlotEventCustom, event)
		}
		return ack + "\n\n" + ask, e.update(sess)

	case domain.StepMenu:
		key, reason := e.validator.ParseMenu(raw)
		if reason != ReasonNone {
			sess.Touch(now)
			reply := e.table.Render(lang, i18n.SlotMenuInvalid, packNames(lang))
			return reply, e.update(sess)
		}
		sess.Answers.MenuPack = key
		sess.Step = domain.StepAddons
		sess.Touch(now)
		reply := e.table.Render(lang, i18n.SlotMenuChosen, catalog.PackName(key, lang)) +
			"\n\n" + e.table.Render(lang, i18n.SlotAskAddons, addonList(lang))
		return reply, e.update(sess)

	case domain.StepAddons:
		keys, unmatched, _ := e.validator.ParseAddons(raw)
		sess.Answers.Addons = keys
		sess.Answers.AddonsChosen = true
		sess.Step = domain.StepConfirm
		sess.Touch(now)

		reply := e.summary(sess)
		if len(unmatched) > 0 {
			reply = e.table.Render(lang, i18n.SlotAddonsUnknown, strings.Join(unmatched, ", ")) + "\n\n" + reply
		}
		return reply, e.update(sess)

	case domain.StepConfirm:
		return e.handleConfirm(sess, raw, now)

	case domain.StepDone:
		// The previous booking stands; any new message opens a fresh flow
		sess.Restart(now)
		return e.table.Render(lang, i18n.SlotGreet, e.cfg.RestaurantName), e.update(sess)
	}

	// Unreachable while steps stay in sync with the dispatch above
	e.logger.Error("session in unknown step",
		zap.String("user_id", sess.UserID),
		zap.String("step", string(sess.Step)))
	return e.table.Render(lang, i18n.SlotErrorGeneric), fmt.Errorf("unknown step %q", sess.Step)
}

// handleConfirm finalizes or rolls back at the summary prompt
func (e *Engine) handleConfirm(sess *domain.Session, raw string, now time.Time) (string, error) {
	lang := sess.Language

	yes, reason := e.validator.ParseConfirm(raw)
	if reason != ReasonNone {
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotConfirmUnknown, e.summary(sess)), e.update(sess)
	}

	if !yes {
		// Back to menu selection; everything up to the event answer stays
		sess.Answers.MenuPack = ""
		sess.Answers.Addons = nil
		sess.Answers.AddonsChosen = false
		sess.Step = domain.StepMenu
		sess.Touch(now)
		return e.table.Render(lang, i18n.SlotAskMenu, menuList(lang)), e.update(sess)
	}

	res, err := e.reservations.Assemble(sess, now)
	if err != nil {
		e.logger.Error("reservation assembly failed",
			zap.String("user_id", sess.UserID),
			zap.Error(err))
		return e.table.Render(lang, i18n.SlotErrorGeneric), err
	}

	// The session moves to DONE carrying the reservation id, so a
	// follow-up "cancel" can void the booking. The sweep reclaims it.
	sess.Step = domain.StepDone
	sess.Answers = domain.Answers{}
	sess.ReservationID = res.ID
	sess.Touch(now)
	if err := e.update(sess); err != nil {
		e.logger.Warn("failed to park session after confirmation",
			zap.String("user_id", sess.UserID),
			zap.Error(err))
	}

	e.logger.Info("reservation confirmed",
		zap.String("user_id", sess.UserID),
		zap.String("reservation_id", res.ID),
		zap.Int("total_cost", res.TotalCost))
	return e.table.Render(lang, i18n.SlotConfirmed,
		res.Name, res.ID, domain.DateString(res.Date), res.Time.String(),
		res.PartySize, catalog.PackName(res.MenuPack, lang), res.TotalCost,
		e.cfg.RestaurantName, e.cfg.RestaurantPhone), nil
}

// cancelConfirmed voids the reservation confirmed earlier in this
// conversation and ends the session
func (e *Engine) cancelConfirmed(sess *domain.Session, now time.Time) (string, bool, error) {
	id := sess.ReservationID
	res, err := e.reservations.Cancel(id, now)
	if err != nil {
		e.logger.Error("failed to cancel confirmed reservation",
			zap.String("user_id", sess.UserID),
			zap.String("reservation_id", id),
			zap.Error(err))
		return e.table.Render(sess.Language, i18n.SlotErrorGeneric), true, fmt.Errorf("cancel reservation %s: %w", id, err)
	}
	if err := e.sessions.Delete(sess.UserID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		e.logger.Warn("failed to clear session after cancellation",
			zap.String("user_id", sess.UserID),
			zap.Error(err))
	}
	return e.table.Render(sess.Language, i18n.SlotCancelledRes, res.ID), true, nil
}

// rejection helpers; each touches and persists the session so a slow
// correction does not time the user out mid-step

func (e *Engine) rejectName(sess *domain.Session, reason Reason, now time.Time) (string, error) {
	slot := i18n.SlotNameEmpty
	var args []any
	switch reason {
	case ReasonNameTooLong:
		slot, args = i18n.SlotNameTooLong, []any{e.cfg.MaxNameLength}
	case ReasonNameNumeric:
		slot = i18n.SlotNameNumeric
	case ReasonNameCommand:
		slot = i18n.SlotNameCommand
	}
	sess.Touch(now)
	return e.table.Render(sess.Language, slot, args...), e.update(sess)
}

func (e *Engine) rejectParty(sess *domain.Session, reason Reason, now time.Time) (string, error) {
	slot := i18n.SlotPartyNaN
	var args []any
	switch reason {
	case ReasonPartyTooSmall:
		slot, args = i18n.SlotPartyTooSmall, []any{e.cfg.MinPartySize}
	case ReasonPartyTooLarge:
		slot, args = i18n.SlotPartyTooLarge, []any{e.cfg.MaxPartySize, e.cfg.RestaurantPhone}
	}
	sess.Touch(now)
	return e.table.Render(sess.Language, slot, args...), e.update(sess)
}

func (e *Engine) rejectDate(sess *domain.Session, reason Reason, now time.Time) (string, error) {
	slot := i18n.SlotDateFormat
	var args []any
	switch reason {
	case ReasonDateCalendar:
		slot = i18n.SlotDateCalendar
	case ReasonDatePast:
		slot = i18n.SlotDatePast
	case ReasonDateTooFar:
		slot, args = i18n.SlotDateTooFar, []any{e.cfg.AdvanceBookingDays}
	}
	sess.Touch(now)
	return e.table.Render(sess.Language, slot, args...), e.update(sess)
}

func (e *Engine) rejectTime(sess *domain.Session, reason Reason, now time.Time) (string, error) {
	slot := i18n.SlotTimeFormat
	var args []any
	if reason == ReasonTimeOutside {
		slot, args = i18n.SlotTimeOutside, []any{e.cfg.OpeningHour, e.cfg.ClosingHour}
	}
	sess.Touch(now)
	return e.table.Render(sess.Language, slot, args...), e.update(sess)
}

// promptFor re-renders the open question for the session's current step
func (e *Engine) promptFor(sess *domain.Session) string {
	lang := sess.Language
	switch sess.Step {
	case domain.StepGreeting, domain.StepDone:
		return e.table.Render(lang, i18n.SlotGreet, e.cfg.RestaurantName)
	case domain.StepName:
		return e.table.Render(lang, i18n.SlotAskName)
	case domain.StepPartySize:
		return e.table.Render(lang, i18n.SlotAskParty, sess.Answers.Name)
	case domain.StepDate:
		return e.table.Render(lang, i18n.SlotAskDate)
	case domain.StepTime:
		return e.table.Render(lang, i18n.SlotAskTime, e.cfg.OpeningHour, e.cfg.ClosingHour)
	case domain.StepEvent:
		return e.table.Render(lang, i18n.SlotAskEvent)
	case domain.StepMenu:
		return e.table.Render(lang, i18n.SlotAskMenu, menuList(lang))
	case domain.StepAddons:
		return e.table.Render(lang, i18n.SlotAskAddons, addonList(lang))
	case domain.StepConfirm:
		return e.summary(sess)
	}
	return e.table.Render(lang, i18n.SlotAskName)
}

// summary renders the booking summary with the pricing breakdown
func (e *Engine) summary(sess *domain.Session) string {
	a := sess.Answers
	lang := sess.Language
	base, addon, total := catalog.Cost(a.MenuPack, a.PartySize, a.Addons)

	addonsText := "None"
	if lang == domain.LangTamil {
		addonsText = "இல்லை"
	}
	if len(a.Addons) > 0 {
		names := make([]string, 0, len(a.Addons))
		for _, k := range a.Addons {
			names = append(names, catalog.AddonName(k, lang))
		}
		addonsText = strings.Join(names, ", ")
	}

	return e.table.Render(lang, i18n.SlotSummary,
		a.Name, a.PartySize, domain.DateString(a.Date), a.Time.String(),
		a.Event, catalog.PackName(a.MenuPack, lang), addonsText,
		base, addon, total)
}

// touch records activity without changing the step
func (e *Engine) touch(sess *domain.Session, now time.Time) error {
	sess.Touch(now)
	return e.update(sess)
}

// update persists the session. If the record vanished mid-conversation
// (swept between Get and Update on a shared backend) it is re-created
// once rather than losing the user's progress.
func (e *Engine) update(sess *domain.Session) error {
	err := e.sessions.Update(sess)
	if errors.Is(err, repository.ErrNotFound) {
		if createErr := e.sessions.Create(sess); createErr != nil {
			return fmt.Errorf("recreate session: %w", createErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// menuList renders the numbered pack listing for prompts
func menuList(lang string) string {
	var b strings.Builder
	for i, p := range catalog.Packs() {
		name := p.NameEN
		if lang == domain.LangTamil {
			name = p.NameTA
		}
		fmt.Fprintf(&b, "%d. %s — ₹%d/person (min %d guests)\n", i+1, name, p.PricePerPerson, p.MinPeople)
	}
	return strings.TrimRight(b.String(), "\n")
}

// addonList renders the add-on listing for prompts
func addonList(lang string) string {
	var b strings.Builder
	for _, a := range catalog.Addons() {
		name := a.NameEN
		if lang == domain.LangTamil {
			name = a.NameTA
		}
		fmt.Fprintf(&b, "• %s — ₹%d\n", name, a.Price)
	}
	return strings.TrimRight(b.String(), "\n")
}

// packNames renders the valid pack names for the invalid-menu message
func packNames(lang string) string {
	names := make([]string, 0, 4)
	for _, p := range catalog.Packs() {
		if lang == domain.LangTamil {
			names = append(names, p.NameTA)
			continue
		}
		names = append(names, p.NameEN)
	}
	return strings.Join(names, ", ")
}
