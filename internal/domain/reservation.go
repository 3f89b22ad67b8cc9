package domain

import "time"

// ReservationStatus is the lifecycle state of a finalized booking
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is an immutable booking record created on confirmation.
// TotalCost is computed once at creation and never recomputed, so later
// price table changes do not affect existing records.
type Reservation struct {
	ID        string
	UserID    string
	Name      string
	PartySize int
	Date      time.Time
	Time      ClockTime
	EventType string
	MenuPack  string
	Addons    []string
	BaseCost  int
	AddonCost int
	TotalCost int
	Status    ReservationStatus
	CreatedAt time.Time
}
