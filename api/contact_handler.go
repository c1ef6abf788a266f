package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/models"
	"github.com/studionord/backend/services"
)

type contactStore interface {
	Add(submission *models.ContactSubmission) error
	FindAll() ([]*models.ContactSubmission, error)
	Delete(id uuid.UUID) error
}

type contactMailer interface {
	Send(ctx context.Context, subject, html string, recipients []string) error
}

type contactHandler struct {
	responder  Responder
	logger     zerolog.Logger
	contacts   contactStore
	mailer     contactMailer
	validate   *validator.Validate
	adminEmail string
}

func newContactHandler(contacts contactStore, mailer contactMailer, adminEmail string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		contacts:   contacts,
		mailer:     mailer,
		validate:   validator.New(),
		adminEmail: adminEmail,
	}
}

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone,omitempty"`
	Company          string `json:"company,omitempty"`
	Message          string `json:"message" validate:"required"`
	PrivacyConsent   bool   `json:"privacyConsent" validate:"required"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// createContact validates and persists a submission, then fires the two
// notification emails. Email dispatch is best effort: failures are logged
// and never surfaced to the visitor.
func (h contactHandler) createContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		submission := models.ContactSubmission{
			Name:             sanitizeText(req.Name),
			Email:            strings.TrimSpace(req.Email),
			Phone:            sanitizeText(req.Phone),
			Company:          sanitizeText(req.Company),
			Message:          sanitizeText(req.Message),
			PrivacyConsent:   req.PrivacyConsent,
			MarketingConsent: req.MarketingConsent,
		}

		if err := h.contacts.Add(&submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact submission", err))
			return
		}

		h.sendNotifications(submission)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"message": "contact submission received",
			"id":      submission.ID.String(),
		})
	}
}

// sendNotifications dispatches the visitor confirmation and the admin
// notification in parallel. The request is already answered successfully by
// contract, so this only logs.
func (h contactHandler) sendNotifications(submission models.ContactSubmission) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	var g errgroup.Group
	g.Go(func() error {
		html, err := services.BuildClientConfirmationHTML(submission)
		if err != nil {
			return err
		}
		return h.mailer.Send(ctx, "We received your message", html, []string{submission.Email})
	})
	g.Go(func() error {
		html, err := services.BuildAdminNotificationHTML(submission)
		if err != nil {
			return err
		}
		return h.mailer.Send(ctx, "New contact submission: "+submission.Name, html, []string{h.adminEmail})
	})

	go func() {
		defer cancel()
		if err := g.Wait(); err != nil {
			h.logger.Warn().
				Err(err).
				Str("code", errs.CodeEmail).
				Str("submission_id", submission.ID.String()).
				Msg("contact notification email failed")
		}
	}()
}

// getAllContacts lists every submission for the admin dashboard.
func (h contactHandler) getAllContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := h.contacts.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact submissions", err))
			return
		}
		if submissions == nil {
			submissions = []*models.ContactSubmission{}
		}

		h.responder.WriteJSON(w, map[string]any{
			"contacts": submissions,
			"total":    len(submissions),
		})
	}
}

// deleteContact removes one submission by id.
func (h contactHandler) deleteContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uuid.Parse(chi.URLParam(r, "contactID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
			return
		}

		if err := h.contacts.Delete(contactID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact submission", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "contact submission deleted successfully",
		})
	}
}

// sanitizeText trims whitespace and strips control characters from visitor
// input before it is stored or embedded in email.
func sanitizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

// validationError converts validator failures into a field-tagged 400.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		field := lowerFirst(first.Field())
		if first.Tag() == "email" {
			return errs.NewBadRequestErrorWithField("invalid email address", field)
		}
		return errs.NewBadRequestErrorWithField("missing or invalid field: "+field, field)
	}
	return errs.NewBadRequestError("invalid request")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
