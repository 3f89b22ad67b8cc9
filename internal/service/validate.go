package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tablebot/internal/catalog"
	"tablebot/internal/config"
	"tablebot/internal/domain"
)

// Reason identifies why an input was rejected at the current step. Each
// reason maps to its own templated message; there is no generic
// "I don't understand" path.
type Reason string

const (
	ReasonNone Reason = ""

	ReasonNameEmpty   Reason = "name_empty"
	ReasonNameTooLong Reason = "name_too_long"
	ReasonNameNumeric Reason = "name_numeric"
	ReasonNameCommand Reason = "name_command"

	ReasonPartyNaN      Reason = "party_nan"
	ReasonPartyTooSmall Reason = "party_too_small"
	ReasonPartyTooLarge Reason = "party_too_large"

	ReasonDateFormat   Reason = "date_format"
	ReasonDateCalendar Reason = "date_calendar"
	ReasonDatePast     Reason = "date_past"
	ReasonDateTooFar   Reason = "date_too_far"

	ReasonTimeFormat  Reason = "time_format"
	ReasonTimeOutside Reason = "time_outside"

	ReasonMenuUnknown Reason = "menu_unknown"

	ReasonConfirmUnknown Reason = "confirm_unknown"
)

var (
	datePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	timePattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?$`)
	digitsOnly  = regexp.MustCompile(`^[\d\s]+$`)
)

// Validator holds the configured bounds and provides one pure parsing
// function per conversation step
type Validator struct {
	minParty    int
	maxParty    int
	openingHour int
	closingHour int
	advanceDays int
	maxNameLen  int
}

// NewValidator creates a validator from the loaded configuration
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		minParty:    cfg.MinPartySize,
		maxParty:    cfg.MaxPartySize,
		openingHour: cfg.OpeningHour,
		closingHour: cfg.ClosingHour,
		advanceDays: cfg.AdvanceBookingDays,
		maxNameLen:  cfg.MaxNameLength,
	}
}

// ParseName validates and title-cases a guest name. Command keywords are
// rejected so a name can never shadow the global command vocabulary.
func (v *Validator) ParseName(raw string) (string, Reason) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ReasonNameEmpty
	}
	if len([]rune(name)) > v.maxNameLen {
		return "", ReasonNameTooLong
	}
	if digitsOnly.MatchString(name) {
		return "", ReasonNameNumeric
	}
	if isGlobalCommand(name) {
		return "", ReasonNameCommand
	}
	return titleCase(name), ReasonNone
}

// ParsePartySize parses the guest count against the configured bounds
func (v *Validator) ParsePartySize(raw string) (int, Reason) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ReasonPartyNaN
	}
	if n < v.minParty {
		return 0, ReasonPartyTooSmall
	}
	if n > v.maxParty {
		return 0, ReasonPartyTooLarge
	}
	return n, ReasonNone
}

// ParseDate parses a strict DD-MM-YYYY date and checks it is between
// today and the advance-booking horizon, inclusive
func (v *Validator) ParseDate(raw string, today time.Time) (time.Time, Reason) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return time.Time{}, ReasonDateFormat
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())
	// time.Date normalizes overflow (e.g. 31-02 becomes 02-03 or 03-03),
	// so a round-trip mismatch means a calendar-invalid date
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, ReasonDateCalendar
	}

	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if date.Before(midnight) {
		return time.Time{}, ReasonDatePast
	}
	if date.After(midnight.AddDate(0, 0, v.advanceDays)) {
		return time.Time{}, ReasonDateTooFar
	}
	return date, ReasonNone
}

// ParseTime parses flexible time formats ("7 PM", "19:00", "7:30 PM")
// into a 24-hour clock value within opening hours
func (v *Validator) ParseTime(raw string) (domain.ClockTime, Reason) {
	m := timePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if m == nil {
		return domain.ClockTime{}, ReasonTimeFormat
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := strings.ReplaceAll(m[3], ".", "")

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return domain.ClockTime{}, ReasonTimeFormat
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return domain.ClockTime{}, ReasonTimeFormat
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return domain.ClockTime{}, ReasonTimeFormat
		}
	}
	if minute > 59 {
		return domain.ClockTime{}, ReasonTimeFormat
	}

	if hour < v.openingHour || hour >= v.closingHour {
		return domain.ClockTime{}, ReasonTimeOutside
	}
	return domain.ClockTime{Hour: hour, Minute: minute}, ReasonNone
}

// ParseEvent normalizes the event description and reports whether it
// matches a known event type. Unknown events are still accepted as
// custom; this step never rejects.
func (v *Validator) ParseEvent(raw string) (event string, known bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Celebration", false
	}
	if rec, ok := catalog.RecommendationFor(trimmed); ok {
		return rec.EventType, true
	}
	return titleCase(trimmed), false
}

// ParseMenu resolves the input against the menu pack alias table
func (v *Validator) ParseMenu(raw string) (string, Reason) {
	key, ok := catalog.ResolvePack(strings.ToLower(strings.TrimSpace(raw)))
	if !ok {
		return "", ReasonMenuUnknown
	}
	return key, ReasonNone
}

// confirmYesWords and confirmNoWords are the accepted replies at the
// summary prompt
var confirmYesWords = map[string]bool{
	"yes": true, "y": true, "confirm": true, "ok": true, "okay": true,
	"yeah": true, "yep": true, "sure": true, "ஆமாம்": true, "சரி": true,
}

var confirmNoWords = map[string]bool{
	"no": true, "n": true, "nope": true, "change": true, "இல்லை": true,
}

// ParseConfirm interprets the reply to the booking summary. Anything
// outside the yes/no vocabulary is rejected so the summary is re-shown.
func (v *Validator) ParseConfirm(raw string) (yes bool, reason Reason) {
	word := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case confirmYesWords[word]:
		return true, ReasonNone
	case confirmNoWords[word]:
		return false, ReasonNone
	default:
		return false, ReasonConfirmUnknown
	}
}

// addonNoneWords are the explicit "no add-ons" keywords
var addonNoneWords = map[string]bool{
	"none": true, "no": true, "skip": true, "nothing": true, "illa": true, "வேண்டாம்": true,
}

// ParseAddons splits the input into tokens and matches each against the
// add-on alias table. Matched tokens accumulate into a set; unmatched
// ones are reported but do not abort the selection. An explicit "none"
// keyword yields an empty set.
func (v *Validator) ParseAddons(raw string) (keys []string, unmatched []string, none bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if addonNoneWords[trimmed] {
		return nil, nil, true
	}

	normalized := strings.NewReplacer("\n", ",", " and ", ",", "&", ",", "+", ",").Replace(trimmed)
	seen := make(map[string]bool)
	for _, token := range strings.Split(normalized, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key, ok := catalog.ResolveAddon(token)
		if !ok {
			unmatched = append(unmatched, token)
			continue
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, unmatched, false
}

// titleCase capitalizes the first letter of each word, lowering the rest
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
