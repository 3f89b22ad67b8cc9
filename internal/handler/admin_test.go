package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tablebot/internal/domain"
	"tablebot/internal/repository"
	"tablebot/internal/repository/memory"
	"tablebot/internal/service"
	"tablebot/internal/testutil"
)

func newAdminServer(t *testing.T) (*echo.Echo, *memory.SessionStore, *testutil.MockReservationRepository) {
	t.Helper()
	store := memory.NewSessionStore(15 * time.Minute)
	mockRepo := new(testutil.MockReservationRepository)
	resSvc := service.NewReservationService(mockRepo, nil, testutil.NewTestLogger())

	e := echo.New()
	NewAdmin(store, resSvc, testutil.NewTestLogger()).Register(e)
	return e, store, mockRepo
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdmin_Health(t *testing.T) {
	e, _, _ := newAdminServer(t)
	rec := doRequest(e, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestAdmin_ListSessions(t *testing.T) {
	e, store, _ := newAdminServer(t)
	now := time.Now()

	sess := domain.NewSession("u-1", domain.LangEnglish, now)
	sess.Step = domain.StepDate
	sess.Answers.Name = "Priya"
	sess.Answers.PartySize = 4
	require.NoError(t, store.Create(sess))

	rec := doRequest(e, http.MethodGet, "/sessions")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []SessionView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "u-1", body.Items[0].UserID)
	assert.Equal(t, "date", body.Items[0].Step)
	assert.Equal(t, 2, body.Items[0].AnswersGiven)
}

func TestAdmin_DeleteSession(t *testing.T) {
	e, store, _ := newAdminServer(t)
	require.NoError(t, store.Create(domain.NewSession("u-1", domain.LangEnglish, time.Now())))

	rec := doRequest(e, http.MethodDelete, "/sessions/u-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := store.Get("u-1")
	assert.Error(t, err)

	rec = doRequest(e, http.MethodDelete, "/sessions/u-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_GetStats(t *testing.T) {
	e, _, mockRepo := newAdminServer(t)
	mockRepo.On("Stats", mock.Anything).Return(&repository.ReservationStats{
		TotalBookings: 12,
		TodayBookings: 3,
		TotalRevenue:  84500,
		PopularMenu:   "nonveg",
		PopularEvent:  "Birthday",
	}, nil)

	rec := doRequest(e, http.MethodGet, "/stats")
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats repository.ReservationStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 12, stats.TotalBookings)
	assert.Equal(t, "nonveg", stats.PopularMenu)
}

func TestAdmin_ListReservationsWithFilters(t *testing.T) {
	e, _, mockRepo := newAdminServer(t)

	res := &domain.Reservation{
		ID:        "RC20260827ABCDEF",
		UserID:    "u-1",
		Name:      "Priya",
		PartySize: 8,
		Date:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		Time:      domain.ClockTime{Hour: 19},
		MenuPack:  "nonveg",
		TotalCost: 7692,
		Status:    domain.StatusConfirmed,
	}
	expected := repository.ReservationFilter{Name: "pri", Date: "05-09-2026", Status: "confirmed"}
	mockRepo.On("List", expected).Return([]*domain.Reservation{res}, nil)

	rec := doRequest(e, http.MethodGet, "/reservations?name=pri&date=05-09-2026&status=confirmed")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []ReservationView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "05-09-2026", body.Items[0].Date)
	assert.Equal(t, "19:00", body.Items[0].Time)
	mockRepo.AssertExpectations(t)
}

func TestAdmin_GetReservation(t *testing.T) {
	e, _, mockRepo := newAdminServer(t)
	mockRepo.On("Get", "missing").Return(nil, repository.ErrNotFound)

	rec := doRequest(e, http.MethodGet, "/reservations/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_CancelReservation(t *testing.T) {
	e, _, mockRepo := newAdminServer(t)
	res := &domain.Reservation{
		ID:     "RC20260827ABCDEF",
		Status: domain.StatusConfirmed,
	}
	mockRepo.On("Get", res.ID).Return(res, nil)
	mockRepo.On("Cancel", res.ID).Return(nil).Once()

	rec := doRequest(e, http.MethodPost, "/reservations/"+res.ID+"/cancel")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cancelled")

	mockRepo.On("Cancel", res.ID).Return(repository.ErrConflict)
	rec = doRequest(e, http.MethodPost, "/reservations/"+res.ID+"/cancel")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdmin_Catalog(t *testing.T) {
	e, _, _ := newAdminServer(t)

	rec := doRequest(e, http.MethodGet, "/menu")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Non-Veg Classic")
	assert.Contains(t, rec.Body.String(), "499")

	rec = doRequest(e, http.MethodGet, "/addons")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Designer Cake")
	assert.Contains(t, rec.Body.String(), "1200")
}
