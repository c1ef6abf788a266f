package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/models"
)

type bookingStore interface {
	Add(booking *models.Booking) error
	FindAll() ([]*models.Booking, error)
	Delete(id uuid.UUID) error
	DeleteMany(ids []uuid.UUID) (int, map[uuid.UUID]string)
}

type bookingHandler struct {
	responder Responder
	logger    zerolog.Logger
	bookings  bookingStore
	validate  *validator.Validate
}

func newBookingHandler(bookings bookingStore) bookingHandler {
	logger := log.With().Str("handlerName", "bookingHandler").Logger()

	return bookingHandler{
		responder: NewResponder(logger),
		logger:    logger,
		bookings:  bookings,
		validate:  validator.New(),
	}
}

// BookingRequest is the public consultation-request payload.
type BookingRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty"`
	Company        string `json:"company,omitempty"`
	Service        string `json:"service,omitempty"`
	PreferredDate  string `json:"preferredDate,omitempty"`
	PreferredTime  string `json:"preferredTime,omitempty"`
	Budget         string `json:"budget,omitempty"`
	Message        string `json:"message" validate:"required"`
	PrivacyConsent bool   `json:"privacyConsent" validate:"required"`
}

// BulkDeleteRequest names the bookings to remove.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// createBooking stores a public consultation request.
func (h bookingHandler) createBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		booking := models.Booking{
			Name:           sanitizeText(req.Name),
			Email:          strings.TrimSpace(req.Email),
			Phone:          sanitizeText(req.Phone),
			Company:        sanitizeText(req.Company),
			Service:        sanitizeText(req.Service),
			PreferredDate:  sanitizeText(req.PreferredDate),
			PreferredTime:  sanitizeText(req.PreferredTime),
			Budget:         sanitizeText(req.Budget),
			Message:        sanitizeText(req.Message),
			PrivacyConsent: req.PrivacyConsent,
		}

		if err := h.bookings.Add(&booking); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "booking", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"message": "booking received",
			"id":      booking.ID.String(),
		})
	}
}

// getAllBookings lists every booking for the admin dashboard.
func (h bookingHandler) getAllBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := h.bookings.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "bookings", err))
			return
		}
		if bookings == nil {
			bookings = []*models.Booking{}
		}

		h.responder.WriteJSON(w, map[string]any{
			"bookings": bookings,
			"total":    len(bookings),
		})
	}
}

// deleteBooking removes one booking by id.
func (h bookingHandler) deleteBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := uuid.Parse(chi.URLParam(r, "bookingID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid bookingID"))
			return
		}

		if err := h.bookings.Delete(bookingID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "booking", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "booking deleted successfully",
		})
	}
}

// bulkDeleteBookings removes a list of bookings. The id list is validated
// before any store call; per-id failures do not stop the rest and are
// reported alongside a 500.
func (h bookingHandler) bulkDeleteBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(req.IDs) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("ids must be a non-empty array", "ids"))
			return
		}

		ids := make([]uuid.UUID, 0, len(req.IDs))
		for _, raw := range req.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid booking id: "+raw, "ids"))
				return
			}
			ids = append(ids, id)
		}

		deleted, failed := h.bookings.DeleteMany(ids)
		if len(failed) > 0 {
			failures := make(map[string]string, len(failed))
			for id, msg := range failed {
				failures[id.String()] = msg
			}
			h.logger.Error().
				Int("deleted", deleted).
				Int("failed", len(failed)).
				Msg("bulk delete completed with failures")

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			h.responder.WriteJSON(w, map[string]any{
				"success":  false,
				"deleted":  deleted,
				"failures": failures,
			})
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "bookings deleted",
			"deleted": deleted,
		})
	}
}
