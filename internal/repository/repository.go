package repository

import (
	"errors"
	"time"

	"tablebot/internal/domain"
)

// ErrNotFound is returned when a session or reservation does not exist
var ErrNotFound = errors.New("not found")

// ErrSessionExists is returned by Create when a live (non-expired) session
// already exists for the user; the caller must restart explicitly first
var ErrSessionExists = errors.New("session already exists")

// ErrConflict is returned when a state transition cannot be applied, such
// as cancelling an already-cancelled reservation. Callers may retry
// per-user operations once before surfacing a transient failure.
var ErrConflict = errors.New("conflict")

// SessionStore defines session lifecycle operations. Operations on the
// same user id must be mutually exclusive; callers hold the per-user lock
// via Acquire around every read-modify-write, including the sweep.
type SessionStore interface {
	// Acquire takes the per-user lock and returns its release func
	Acquire(userID string) (release func())
	Get(userID string) (*domain.Session, error)
	Create(s *domain.Session) error
	Update(s *domain.Session) error
	Delete(userID string) error
	List() ([]*domain.Session, error)
	// Sweep removes every session idle longer than the store's timeout
	// and reports how many were removed
	Sweep(now time.Time) (int, error)
}

// ReservationFilter narrows List results; zero fields match everything
type ReservationFilter struct {
	Name   string // substring, case-insensitive
	Date   string // DD-MM-YYYY
	Status string
}

// ReservationStats is the dashboard snapshot for admin tooling
type ReservationStats struct {
	TotalBookings int
	TodayBookings int
	TotalRevenue  int
	PopularMenu   string
	PopularEvent  string
}

// ReservationRepository defines durable reservation record operations.
// Records are immutable apart from the one-way CONFIRMED→CANCELLED
// transition applied by Cancel.
type ReservationRepository interface {
	Save(r *domain.Reservation) error
	Get(id string) (*domain.Reservation, error)
	Exists(id string) (bool, error)
	List(f ReservationFilter) ([]*domain.Reservation, error)
	Cancel(id string) error
	Stats(now time.Time) (*ReservationStats, error)
}
