package service

import (
	"testing"
	"time"

	"tablebot/internal/domain"
	"tablebot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewValidator(testutil.NewTestConfig())
}

func TestValidator_ParseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		reason   Reason
	}{
		{name: "simple name", input: "priya", expected: "Priya", reason: ReasonNone},
		{name: "trims and title-cases", input: "  ravi kumar  ", expected: "Ravi Kumar", reason: ReasonNone},
		{name: "empty", input: "   ", reason: ReasonNameEmpty},
		{name: "pure numeric", input: "12345", reason: ReasonNameNumeric},
		{name: "numeric with spaces", input: "12 34", reason: ReasonNameNumeric},
		{name: "command keyword", input: "restart", reason: ReasonNameCommand},
		{name: "command keyword with slash", input: "/cancel", reason: ReasonNameCommand},
		{name: "name containing digits is fine", input: "Kumar 2nd", expected: "Kumar 2nd", reason: ReasonNone},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := v.ParseName(tt.input)
			assert.Equal(t, tt.reason, reason)
			if tt.reason == ReasonNone {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestValidator_ParseName_TooLong(t *testing.T) {
	v := newTestValidator()
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, reason := v.ParseName(string(long))
	assert.Equal(t, ReasonNameTooLong, reason)

	// exactly at the limit is accepted
	_, reason = v.ParseName(string(long[:50]))
	assert.Equal(t, ReasonNone, reason)
}

func TestValidator_ParsePartySize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		reason   Reason
	}{
		{name: "normal", input: "8", expected: 8, reason: ReasonNone},
		{name: "lower bound", input: "1", expected: 1, reason: ReasonNone},
		{name: "upper bound", input: "200", expected: 200, reason: ReasonNone},
		{name: "below minimum", input: "0", reason: ReasonPartyTooSmall},
		{name: "negative", input: "-3", reason: ReasonPartyTooSmall},
		{name: "above maximum", input: "201", reason: ReasonPartyTooLarge},
		{name: "not a number", input: "eight", reason: ReasonPartyNaN},
		{name: "trailing text", input: "8 people", reason: ReasonPartyNaN},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := v.ParsePartySize(tt.input)
			assert.Equal(t, tt.reason, reason)
			if tt.reason == ReasonNone {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestValidator_ParseDate(t *testing.T) {
	today := time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  string
		reason Reason
	}{
		{name: "valid future date", input: "05-09-2026", reason: ReasonNone},
		{name: "today is allowed", input: "27-08-2026", reason: ReasonNone},
		{name: "exactly at the advance horizon", input: "26-10-2026", reason: ReasonNone},
		{name: "one day past the horizon", input: "27-10-2026", reason: ReasonDateTooFar},
		{name: "yesterday", input: "26-08-2026", reason: ReasonDatePast},
		{name: "wrong format", input: "2026-09-05", reason: ReasonDateFormat},
		{name: "missing leading zeros", input: "5-9-2026", reason: ReasonDateFormat},
		{name: "garbage", input: "next friday", reason: ReasonDateFormat},
		{name: "nonexistent day", input: "31-02-2026", reason: ReasonDateCalendar},
		{name: "nonexistent month", input: "10-13-2026", reason: ReasonDateCalendar},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reason := v.ParseDate(tt.input, today)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestValidator_ParseTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.ClockTime
		reason   Reason
	}{
		{name: "pm shorthand", input: "7 PM", expected: domain.ClockTime{Hour: 19}, reason: ReasonNone},
		{name: "24 hour", input: "19:00", expected: domain.ClockTime{Hour: 19}, reason: ReasonNone},
		{name: "pm with minutes", input: "7:30 PM", expected: domain.ClockTime{Hour: 19, Minute: 30}, reason: ReasonNone},
		{name: "dotted meridiem", input: "7 p.m.", expected: domain.ClockTime{Hour: 19}, reason: ReasonNone},
		{name: "noon", input: "12 PM", expected: domain.ClockTime{Hour: 12}, reason: ReasonNone},
		{name: "opening hour inclusive", input: "11:00", expected: domain.ClockTime{Hour: 11}, reason: ReasonNone},
		{name: "last slot before close", input: "22:59", expected: domain.ClockTime{Hour: 22, Minute: 59}, reason: ReasonNone},
		{name: "closing hour exclusive", input: "23:00", reason: ReasonTimeOutside},
		{name: "too early", input: "9 AM", reason: ReasonTimeOutside},
		{name: "midnight am", input: "12 AM", reason: ReasonTimeOutside},
		{name: "unparseable", input: "evening", reason: ReasonTimeFormat},
		{name: "minutes out of range", input: "19:75", reason: ReasonTimeFormat},
		{name: "hour out of range", input: "25:00", reason: ReasonTimeFormat},
		{name: "meridiem hour out of range", input: "13 PM", reason: ReasonTimeFormat},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := v.ParseTime(tt.input)
			assert.Equal(t, tt.reason, reason)
			if tt.reason == ReasonNone {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestValidator_ParseEvent(t *testing.T) {
	v := newTestValidator()

	event, known := v.ParseEvent("birthday party")
	assert.True(t, known)
	assert.Equal(t, "Birthday", event)

	event, known = v.ParseEvent("ANNIVERSARY")
	assert.True(t, known)
	assert.Equal(t, "Anniversary", event)

	// unknown events are accepted as custom, never rejected
	event, known = v.ParseEvent("golu kondattam")
	assert.False(t, known)
	assert.Equal(t, "Golu Kondattam", event)
}

func TestValidator_ParseMenu(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		reason   Reason
	}{
		{name: "canonical key", input: "nonveg", expected: "nonveg", reason: ReasonNone},
		{name: "hyphenated alias", input: "Non-Veg", expected: "nonveg", reason: ReasonNone},
		{name: "positional", input: "3", expected: "premium", reason: ReasonNone},
		{name: "descriptive alias", input: "grand", expected: "deluxe", reason: ReasonNone},
		{name: "unknown", input: "seafood special", reason: ReasonMenuUnknown},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := v.ParseMenu(tt.input)
			assert.Equal(t, tt.reason, reason)
			if tt.reason == ReasonNone {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestValidator_ParseAddons(t *testing.T) {
	v := newTestValidator()

	t.Run("comma separated", func(t *testing.T) {
		keys, unmatched, none := v.ParseAddons("decoration, cake")
		assert.False(t, none)
		assert.Empty(t, unmatched)
		assert.Equal(t, []string{"decoration", "cake"}, keys)
	})

	t.Run("joined with and", func(t *testing.T) {
		keys, _, _ := v.ParseAddons("dj and balloons")
		assert.Equal(t, []string{"dj", "balloons"}, keys)
	})

	t.Run("aliases resolve", func(t *testing.T) {
		keys, _, _ := v.ParseAddons("photo, live band")
		assert.Equal(t, []string{"photography", "live_music"}, keys)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		keys, _, _ := v.ParseAddons("cake, designer cake")
		assert.Equal(t, []string{"cake"}, keys)
	})

	t.Run("unmatched reported but rest kept", func(t *testing.T) {
		keys, unmatched, none := v.ParseAddons("cake, fireworks")
		assert.False(t, none)
		assert.Equal(t, []string{"cake"}, keys)
		assert.Equal(t, []string{"fireworks"}, unmatched)
	})

	t.Run("explicit none", func(t *testing.T) {
		keys, unmatched, none := v.ParseAddons("none")
		assert.True(t, none)
		assert.Empty(t, keys)
		assert.Empty(t, unmatched)
	})

	t.Run("skip keyword", func(t *testing.T) {
		_, _, none := v.ParseAddons("  Skip ")
		assert.True(t, none)
	})
}

func TestValidator_ParseConfirm(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		yes    bool
		reason Reason
	}{
		{name: "plain yes", input: "yes", yes: true, reason: ReasonNone},
		{name: "okay with case and space", input: " OKAY ", yes: true, reason: ReasonNone},
		{name: "tamil yes", input: "சரி", yes: true, reason: ReasonNone},
		{name: "plain no", input: "no", reason: ReasonNone},
		{name: "change", input: "change", reason: ReasonNone},
		{name: "tamil no", input: "இல்லை", reason: ReasonNone},
		{name: "anything else", input: "maybe", reason: ReasonConfirmUnknown},
		{name: "empty", input: "", reason: ReasonConfirmUnknown},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yes, reason := v.ParseConfirm(tt.input)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, tt.yes, yes)
		})
	}
}
