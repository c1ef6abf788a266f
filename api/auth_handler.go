package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studionord/backend/auth"
	"github.com/studionord/backend/errs"
)

type authHandler struct {
	responder         Responder
	logger            zerolog.Logger
	manager           *auth.Manager
	adminEmail        string
	adminPasswordHash string
}

func newAuthHandler(manager *auth.Manager, adminEmail, adminPasswordHash string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		manager:           manager,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login checks the configured admin credential and issues a session token,
// both as a cookie for the dashboard and in the body for API clients. A bad
// email and a bad password produce the same response.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(h.adminEmail)) == 1
		passwordErr := auth.ComparePassword(h.adminPasswordHash, req.Password)
		if !emailMatch || passwordErr != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.manager.NewAccessToken(auth.RoleAdmin)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue session", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.manager.AccessTTL.Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})

		h.responder.WriteJSON(w, map[string]string{
			"token": token,
			"role":  auth.RoleAdmin,
		})
	}
}
