package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tablebot/internal/catalog"
	"tablebot/internal/domain"
	"tablebot/internal/repository"
	"tablebot/internal/service"
)

// Admin exposes the operational HTTP API: live session inspection,
// reservation queries and the dashboard stats. It is expected to be
// reachable only from the operator network.
type Admin struct {
	sessions     repository.SessionStore
	reservations *service.ReservationService
	logger       *zap.Logger
}

// NewAdmin creates the admin API handler
func NewAdmin(sessions repository.SessionStore, reservations *service.ReservationService, logger *zap.Logger) *Admin {
	return &Admin{sessions: sessions, reservations: reservations, logger: logger}
}

// Register mounts all admin routes
func (h *Admin) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/stats", h.GetStats)
	e.GET("/sessions", h.ListSessions)
	e.DELETE("/sessions/:id", h.DeleteSession)
	e.GET("/reservations", h.ListReservations)
	e.GET("/reservations/:id", h.GetReservation)
	e.POST("/reservations/:id/cancel", h.CancelReservation)
	e.GET("/menu", h.GetMenu)
	e.GET("/addons", h.GetAddons)
}

// SessionView is a session in admin responses
type SessionView struct {
	UserID       string    `json:"user_id"`
	Step         string    `json:"step"`
	Language     string    `json:"language"`
	AnswersGiven int       `json:"answers_given"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// ReservationView is a reservation in admin responses
type ReservationView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	PartySize int       `json:"party_size"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	EventType string    `json:"event_type"`
	MenuPack  string    `json:"menu_pack"`
	Addons    []string  `json:"addons"`
	BaseCost  int       `json:"base_cost"`
	AddonCost int       `json:"addon_cost"`
	TotalCost int       `json:"total_cost"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func reservationView(r *domain.Reservation) ReservationView {
	addons := r.Addons
	if addons == nil {
		addons = []string{}
	}
	return ReservationView{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		PartySize: r.PartySize,
		Date:      domain.DateString(r.Date),
		Time:      r.Time.String(),
		EventType: r.EventType,
		MenuPack:  r.MenuPack,
		Addons:    addons,
		BaseCost:  r.BaseCost,
		AddonCost: r.AddonCost,
		TotalCost: r.TotalCost,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// Health reports process liveness
func (h *Admin) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// GetStats returns the booking dashboard snapshot
func (h *Admin) GetStats(c echo.Context) error {
	stats, err := h.reservations.Stats(time.Now())
	if err != nil {
		h.logger.Error("failed to load stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, stats)
}

// ListSessions returns every live conversation
func (h *Admin) ListSessions(c echo.Context) error {
	sessions, err := h.sessions.List()
	if err != nil {
		h.logger.Error("failed to list sessions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store error"})
	}

	out := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionView{
			UserID:       s.UserID,
			Step:         string(s.Step),
			Language:     s.Language,
			AnswersGiven: s.Answers.Count(),
			CreatedAt:    s.CreatedAt,
			LastActiveAt: s.LastActiveAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// DeleteSession force-evicts one user's conversation
func (h *Admin) DeleteSession(c echo.Context) error {
	userID := c.Param("id")

	release := h.sessions.Acquire(userID)
	defer release()

	if err := h.sessions.Delete(userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		h.logger.Error("failed to delete session", zap.String("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store error"})
	}

	h.logger.Info("session evicted by admin", zap.String("user_id", userID))
	return c.NoContent(http.StatusNoContent)
}

// ListReservations returns reservations matching the optional name, date
// and status query filters
func (h *Admin) ListReservations(c echo.Context) error {
	filter := repository.ReservationFilter{
		Name:   c.QueryParam("name"),
		Date:   c.QueryParam("date"),
		Status: c.QueryParam("status"),
	}

	list, err := h.reservations.List(filter)
	if err != nil {
		h.logger.Error("failed to list reservations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]ReservationView, 0, len(list))
	for _, r := range list {
		out = append(out, reservationView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetReservation returns one reservation by id
func (h *Admin) GetReservation(c echo.Context) error {
	res, err := h.reservations.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		h.logger.Error("failed to get reservation", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, reservationView(res))
}

// CancelReservation marks a confirmed reservation cancelled
func (h *Admin) CancelReservation(c echo.Context) error {
	res, err := h.reservations.Cancel(c.Param("id"), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already cancelled"})
		default:
			h.logger.Error("failed to cancel reservation", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, reservationView(res))
}

// MenuPackView is a menu pack in admin responses
type MenuPackView struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	PricePerPerson int      `json:"price_per_person"`
	MinPeople      int      `json:"min_people"`
	Items          []string `json:"items"`
}

// AddonView is an add-on in admin responses
type AddonView struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// GetMenu returns the menu pack catalog
func (h *Admin) GetMenu(c echo.Context) error {
	out := make([]MenuPackView, 0, 4)
	for _, p := range catalog.Packs() {
		out = append(out, MenuPackView{
			Key:            p.Key,
			Name:           p.NameEN,
			PricePerPerson: p.PricePerPerson,
			MinPeople:      p.MinPeople,
			Items:          p.ItemsEN,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetAddons returns the add-on catalog
func (h *Admin) GetAddons(c echo.Context) error {
	out := make([]AddonView, 0, 8)
	for _, a := range catalog.Addons() {
		out = append(out, AddonView{Key: a.Key, Name: a.NameEN, Price: a.Price})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
