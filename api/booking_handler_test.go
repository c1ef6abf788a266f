package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studionord/backend/models"
)

func newBookingTestRouter(store *fakeBookingStore) *chi.Mux {
	h := newBookingHandler(store)
	r := chi.NewRouter()
	r.Post("/api/bookings", h.createBooking())
	r.Get("/api/bookings", h.getAllBookings())
	r.Delete("/api/bookings/{bookingID}", h.deleteBooking())
	r.Delete("/api/bookings", h.bulkDeleteBookings())
	return r
}

func TestCreateBooking(t *testing.T) {
	store := &fakeBookingStore{}
	router := newBookingTestRouter(store)

	payload := `{
		"name": "Jonas Berg",
		"email": "jonas@example.com",
		"service": "web-design",
		"preferredDate": "2026-09-15",
		"message": "Site refresh for our gallery.",
		"privacyConsent": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.bookings, 1)
	assert.Equal(t, "web-design", store.bookings[0].Service)
}

func TestCreateBookingMissingConsent(t *testing.T) {
	store := &fakeBookingStore{}
	router := newBookingTestRouter(store)

	payload := `{"name":"Jonas","email":"jonas@example.com","message":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.bookings)
}

func TestDeleteBookingUnknownID(t *testing.T) {
	router := newBookingTestRouter(&fakeBookingStore{})

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkDeleteBookings(t *testing.T) {
	a := &models.Booking{ID: uuid.New()}
	b := &models.Booking{ID: uuid.New()}
	store := &fakeBookingStore{bookings: []*models.Booking{a, b}}
	router := newBookingTestRouter(store)

	payload := fmt.Sprintf(`{"ids":["%s","%s"]}`, a.ID, b.ID)
	req := httptest.NewRequest(http.MethodDelete, "/api/bookings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.bookings)
	assert.Contains(t, rec.Body.String(), `"deleted":2`)
}

func TestBulkDeleteBookingsValidation(t *testing.T) {
	store := &fakeBookingStore{bookings: []*models.Booking{{ID: uuid.New()}}}
	router := newBookingTestRouter(store)

	for _, payload := range []string{
		`{"ids":[]}`,
		`{"ids":"not-an-array"}`,
		`{"ids":["nope"]}`,
	} {
		req := httptest.NewRequest(http.MethodDelete, "/api/bookings", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %s", payload)
		// Validation failures never reach the store.
		assert.Len(t, store.bookings, 1)
	}
}

func TestBulkDeleteBookingsReportsPartialFailures(t *testing.T) {
	known := &models.Booking{ID: uuid.New()}
	store := &fakeBookingStore{bookings: []*models.Booking{known}}
	router := newBookingTestRouter(store)

	missing := uuid.New()
	payload := fmt.Sprintf(`{"ids":["%s","%s"]}`, known.ID, missing)
	req := httptest.NewRequest(http.MethodDelete, "/api/bookings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), missing.String())
	assert.Contains(t, rec.Body.String(), `"deleted":1`)
	assert.Empty(t, store.bookings)
}
