package domain

import "time"

// Language codes supported by the bot
const (
	LangEnglish = "en"
	LangTamil   = "ta"
)

// Step represents a position in the reservation conversation flow
type Step string

const (
	StepGreeting  Step = "greeting"
	StepName      Step = "name"
	StepPartySize Step = "party_size"
	StepDate      Step = "date"
	StepTime      Step = "time"
	StepEvent     Step = "event"
	StepMenu      Step = "menu"
	StepAddons    Step = "addons"
	StepConfirm   Step = "confirm"
	StepDone      Step = "done"
)

// stepOrder is the fixed conversation sequence
var stepOrder = []Step{
	StepGreeting,
	StepName,
	StepPartySize,
	StepDate,
	StepTime,
	StepEvent,
	StepMenu,
	StepAddons,
	StepConfirm,
	StepDone,
}

// Valid reports whether s is one of the defined steps
func (s Step) Valid() bool {
	for _, st := range stepOrder {
		if st == s {
			return true
		}
	}
	return false
}

// Index returns the position of s in the conversation sequence, or -1
func (s Step) Index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the step that follows s. DONE is terminal.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i == len(stepOrder)-1 {
		return StepDone
	}
	return stepOrder[i+1]
}

// ClockTime is a time of day on a 24-hour clock
type ClockTime struct {
	Hour   int
	Minute int
}

// String renders the time as HH:MM
func (c ClockTime) String() string {
	return fmtHHMM(c.Hour, c.Minute)
}

func fmtHHMM(h, m int) string {
	digits := func(n int) string {
		return string([]byte{byte('0' + n/10), byte('0' + n%10)})
	}
	return digits(h) + ":" + digits(m)
}

// Answers holds the validated value collected at each step. A zero field
// means the step has not been answered yet; AddonsChosen distinguishes an
// explicit empty add-on selection from an unanswered one.
type Answers struct {
	Name         string
	PartySize    int
	Date         time.Time
	Time         ClockTime
	HasTime      bool
	Event        string
	EventKnown   bool
	MenuPack     string
	Addons       []string
	AddonsChosen bool
}

// Has reports whether the given step already has a validated answer
func (a Answers) Has(step Step) bool {
	switch step {
	case StepName:
		return a.Name != ""
	case StepPartySize:
		return a.PartySize > 0
	case StepDate:
		return !a.Date.IsZero()
	case StepTime:
		return a.HasTime
	case StepEvent:
		return a.Event != ""
	case StepMenu:
		return a.MenuPack != ""
	case StepAddons:
		return a.AddonsChosen
	default:
		return false
	}
}

// Count returns the number of answered steps
func (a Answers) Count() int {
	n := 0
	for _, st := range []Step{StepName, StepPartySize, StepDate, StepTime, StepEvent, StepMenu, StepAddons} {
		if a.Has(st) {
			n++
		}
	}
	return n
}

// Complete reports whether every step up to and including ADDONS is answered
func (a Answers) Complete() bool {
	return a.Count() == 7
}

// Session tracks one user's progress through the reservation flow.
// ReservationID is set once a booking is confirmed, while the session sits
// at DONE; a cancel in that window voids the reservation it names.
type Session struct {
	UserID        string
	Step          Step
	Language      string
	Answers       Answers
	ReservationID string
	CreatedAt     time.Time
	LastActiveAt  time.Time
}

// NewSession creates a fresh session positioned at the greeting step
func NewSession(userID, language string, now time.Time) *Session {
	return &Session{
		UserID:       userID,
		Step:         StepGreeting,
		Language:     language,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Touch records activity on the session
func (s *Session) Touch(now time.Time) {
	s.LastActiveAt = now
}

// Expired reports whether the session has been idle longer than timeout
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActiveAt) > timeout
}

// Restart clears all answers and returns to the greeting step,
// preserving user id and language
func (s *Session) Restart(now time.Time) {
	s.Step = StepGreeting
	s.Answers = Answers{}
	s.ReservationID = ""
	s.LastActiveAt = now
}

// DateString renders the reservation date as DD-MM-YYYY
func DateString(d time.Time) string {
	return d.Format("02-01-2006")
}
