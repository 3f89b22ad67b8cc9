package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tablebot/internal/catalog"
	"tablebot/internal/domain"
	"tablebot/internal/queue"
	"tablebot/internal/repository"
)

// ErrIncompleteBooking is returned when Assemble is called for a session
// that has not answered every step up to the confirmation prompt
var ErrIncompleteBooking = errors.New("booking is not ready to assemble")

const (
	idAttempts     = 5
	publishTimeout = 5 * time.Second
)

// EventPublisher sends reservation lifecycle events. Satisfied by
// queue.Publisher; nil disables publishing.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error
	PublishCancelled(ctx context.Context, event queue.ReservationCancelledEvent) error
}

// ReservationService turns completed sessions into durable reservation
// records and serves the admin query surface
type ReservationService struct {
	repo      repository.ReservationRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewReservationService creates the service. publisher may be nil when no
// message broker is configured.
func NewReservationService(repo repository.ReservationRepository, publisher EventPublisher, logger *zap.Logger) *ReservationService {
	return &ReservationService{repo: repo, publisher: publisher, logger: logger}
}

// Assemble builds and persists a reservation from a fully answered
// session. The session must be at the confirmation step with every
// answer present; pricing is computed here, never trusted from input.
func (s *ReservationService) Assemble(sess *domain.Session, now time.Time) (*domain.Reservation, error) {
	if sess.Step != domain.StepConfirm || !sess.Answers.Complete() {
		return nil, fmt.Errorf("%w: step %s, %d/7 answers", ErrIncompleteBooking, sess.Step, sess.Answers.Count())
	}

	a := sess.Answers
	base, addon, total := catalog.Cost(a.MenuPack, a.PartySize, a.Addons)

	id, err := s.newID(now)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		ID:        id,
		UserID:    sess.UserID,
		Name:      a.Name,
		PartySize: a.PartySize,
		Date:      a.Date,
		Time:      a.Time,
		EventType: a.Event,
		MenuPack:  a.MenuPack,
		Addons:    append([]string(nil), a.Addons...),
		BaseCost:  base,
		AddonCost: addon,
		TotalCost: total,
		Status:    domain.StatusConfirmed,
		CreatedAt: now,
	}

	if err := s.repo.Save(res); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}

	s.publishConfirmed(res)
	return res, nil
}

// newID generates a dated reservation id, retrying on the unlikely
// collision within the same day's uuid fragment
func (s *ReservationService) newID(now time.Time) (string, error) {
	for i := 0; i < idAttempts; i++ {
		fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
		id := "RC" + now.Format("20060102") + fragment

		exists, err := s.repo.Exists(id)
		if err != nil {
			return "", fmt.Errorf("check reservation id: %w", err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique reservation id after %d attempts", idAttempts)
}

// Get returns one reservation by id
func (s *ReservationService) Get(id string) (*domain.Reservation, error) {
	return s.repo.Get(id)
}

// List returns reservations matching the filter
func (s *ReservationService) List(f repository.ReservationFilter) ([]*domain.Reservation, error) {
	return s.repo.List(f)
}

// Stats returns the admin dashboard snapshot
func (s *ReservationService) Stats(now time.Time) (*repository.ReservationStats, error) {
	return s.repo.Stats(now)
}

// Cancel marks a confirmed reservation cancelled and publishes the
// cancellation event. Cancelling twice returns repository.ErrConflict.
func (s *ReservationService) Cancel(id string, now time.Time) (*domain.Reservation, error) {
	res, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Cancel(id); err != nil {
		return nil, err
	}
	res.Status = domain.StatusCancelled

	s.publishCancelled(res, now)
	s.logger.Info("reservation cancelled",
		zap.String("reservation_id", id),
		zap.String("user_id", res.UserID))
	return res, nil
}

// Event publishing is best effort: a broker outage must never fail the
// booking that already committed to the database.

func (s *ReservationService) publishConfirmed(res *domain.Reservation) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	event := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		Name:          res.Name,
		PartySize:     res.PartySize,
		Date:          domain.DateString(res.Date),
		Time:          res.Time.String(),
		EventType:     res.EventType,
		MenuPack:      res.MenuPack,
		Addons:        res.Addons,
		TotalCost:     res.TotalCost,
		ConfirmedAt:   res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishConfirmed(ctx, event); err != nil {
		s.logger.Warn("failed to publish confirmation event",
			zap.String("reservation_id", res.ID),
			zap.Error(err))
	}
}

func (s *ReservationService) publishCancelled(res *domain.Reservation, now time.Time) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	event := queue.ReservationCancelledEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		Date:          domain.DateString(res.Date),
		Time:          res.Time.String(),
		CancelledAt:   now.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishCancelled(ctx, event); err != nil {
		s.logger.Warn("failed to publish cancellation event",
			zap.String("reservation_id", res.ID),
			zap.Error(err))
	}
}
