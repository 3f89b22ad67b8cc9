package testutil

import (
	"time"

	"tablebot/internal/config"
	"tablebot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestConfig returns a configuration with the documented defaults,
// independent of the environment
func NewTestConfig() *config.Config {
	return &config.Config{
		BotToken:           "test-token",
		AdminAddr:          ":8080",
		SessionBackend:     "memory",
		SessionTimeout:     15 * time.Minute,
		MinPartySize:       1,
		MaxPartySize:       200,
		OpeningHour:        11,
		ClosingHour:        23,
		AdvanceBookingDays: 60,
		MaxNameLength:      50,
		DefaultLanguage:    "en",
		RestaurantName:     "Royal Chef's Restaurant",
		RestaurantPhone:    "+91-9876543210",
	}
}

// NewCompleteSession returns a session positioned at the confirmation
// step with every answer filled in
func NewCompleteSession(userID string, now time.Time) *domain.Session {
	sess := domain.NewSession(userID, domain.LangEnglish, now)
	sess.Step = domain.StepConfirm
	sess.Answers = domain.Answers{
		Name:         "Priya",
		PartySize:    8,
		Date:         now.AddDate(0, 0, 7),
		Time:         domain.ClockTime{Hour: 19, Minute: 0},
		HasTime:      true,
		Event:        "Birthday",
		EventKnown:   true,
		MenuPack:     "nonveg",
		Addons:       []string{"decoration", "cake"},
		AddonsChosen: true,
	}
	return sess
}
