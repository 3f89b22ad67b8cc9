package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"tablebot/internal/domain"
	"tablebot/internal/repository"
)

// ReservationRepo implements repository.ReservationRepository
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo creates a new reservation repository
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

const reservationColumns = `id, user_id, name, party_size, date, res_time, event_type, menu_pack, addons, base_cost, addon_cost, total_cost, status, created_at`

// Save inserts a new reservation record
func (r *ReservationRepo) Save(res *domain.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(query,
		res.ID, res.UserID, res.Name, res.PartySize, res.Date, res.Time.String(),
		res.EventType, res.MenuPack, pq.Array(res.Addons),
		res.BaseCost, res.AddonCost, res.TotalCost, string(res.Status), res.CreatedAt,
	)
	return err
}

// Get returns the reservation with the given id
func (r *ReservationRepo) Get(id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return res, err
}

// Exists reports whether a reservation id is already taken
func (r *ReservationRepo) Exists(id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = $1)`
	err := r.db.QueryRow(query, id).Scan(&exists)
	return exists, err
}

// List returns reservations matching the filter, newest first
func (r *ReservationRepo) List(f repository.ReservationFilter) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`
	var conds []string
	var args []any

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conds = append(conds, "name ILIKE $"+strconv.Itoa(len(args)))
	}
	if f.Date != "" {
		date, err := time.Parse("02-01-2006", f.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid filter date %q: %w", f.Date, err)
		}
		args = append(args, date)
		conds = append(conds, "date = $"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Cancel applies the one-way CONFIRMED→CANCELLED transition
func (r *ReservationRepo) Cancel(id string) error {
	query := `UPDATE reservations SET status = 'cancelled' WHERE id = $1 AND status = 'confirmed'`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	exists, err := r.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict // already cancelled
}

// Stats builds the dashboard snapshot
func (r *ReservationRepo) Stats(now time.Time) (*repository.ReservationStats, error) {
	stats := &repository.ReservationStats{}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE date = $1),
		       COALESCE(SUM(total_cost) FILTER (WHERE status = 'confirmed'), 0)
		FROM reservations
	`
	err := r.db.QueryRow(query, today).Scan(&stats.TotalBookings, &stats.TodayBookings, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}

	stats.PopularMenu, err = r.topValue("menu_pack")
	if err != nil {
		return nil, err
	}
	stats.PopularEvent, err = r.topValue("event_type")
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// topValue returns the most frequent value of a column, or "" when empty.
// The column name comes from a fixed internal call site, never user input.
func (r *ReservationRepo) topValue(column string) (string, error) {
	var value string
	query := `SELECT ` + column + ` FROM reservations GROUP BY ` + column + ` ORDER BY COUNT(*) DESC LIMIT 1`
	err := r.db.QueryRow(query).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var timeStr, status string
	var addons pq.StringArray

	err := row.Scan(
		&res.ID, &res.UserID, &res.Name, &res.PartySize, &res.Date, &timeStr,
		&res.EventType, &res.MenuPack, &addons,
		&res.BaseCost, &res.AddonCost, &res.TotalCost, &status, &res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Addons = []string(addons)
	res.Status = domain.ReservationStatus(status)
	res.Time, err = parseClock(timeStr)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func parseClock(s string) (domain.ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return domain.ClockTime{}, fmt.Errorf("invalid stored time %q: %w", s, err)
	}
	return domain.ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}
