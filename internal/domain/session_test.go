package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepSequence(t *testing.T) {
	assert.Equal(t, StepName, StepGreeting.Next())
	assert.Equal(t, StepConfirm, StepAddons.Next())
	assert.Equal(t, StepDone, StepConfirm.Next())
	assert.Equal(t, StepDone, StepDone.Next())

	assert.True(t, StepMenu.Valid())
	assert.False(t, Step("checkout").Valid())
	assert.Equal(t, -1, Step("checkout").Index())
	assert.Less(t, StepName.Index(), StepConfirm.Index())
}

func TestClockTime_String(t *testing.T) {
	assert.Equal(t, "19:00", ClockTime{Hour: 19}.String())
	assert.Equal(t, "09:05", ClockTime{Hour: 9, Minute: 5}.String())
}

func TestAnswers_Progress(t *testing.T) {
	var a Answers
	assert.Equal(t, 0, a.Count())
	assert.False(t, a.Complete())

	a.Name = "Priya"
	a.PartySize = 8
	a.Date = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	a.Time = ClockTime{Hour: 19}
	a.HasTime = true
	a.Event = "Birthday"
	a.MenuPack = "nonveg"
	assert.Equal(t, 6, a.Count())
	assert.False(t, a.Complete())

	// an explicit empty add-on choice still counts as an answer
	a.AddonsChosen = true
	assert.Equal(t, 7, a.Count())
	assert.True(t, a.Complete())
}

func TestSession_Expiry(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	sess := NewSession("u-1", LangEnglish, now)

	timeout := 15 * time.Minute
	assert.False(t, sess.Expired(now.Add(timeout), timeout))
	assert.True(t, sess.Expired(now.Add(timeout+time.Second), timeout))

	sess.Touch(now.Add(10 * time.Minute))
	assert.False(t, sess.Expired(now.Add(timeout+time.Second), timeout))
}

func TestSession_Restart(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	sess := NewSession("u-1", LangTamil, now)
	sess.Step = StepMenu
	sess.Answers.Name = "Priya"
	sess.Answers.PartySize = 8
	sess.ReservationID = "RC20260827ABCDEF"

	later := now.Add(5 * time.Minute)
	sess.Restart(later)

	assert.Equal(t, "u-1", sess.UserID)
	assert.Equal(t, LangTamil, sess.Language)
	assert.Equal(t, StepGreeting, sess.Step)
	assert.Equal(t, Answers{}, sess.Answers)
	assert.Empty(t, sess.ReservationID)
	assert.Equal(t, later, sess.LastActiveAt)
	assert.Equal(t, now, sess.CreatedAt)
}

func TestDateString(t *testing.T) {
	d := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05-09-2026", DateString(d))
}
