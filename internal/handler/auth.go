package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shahriar/govjobs/internal/auth"
	"github.com/shahriar/govjobs/internal/service"
)

// AuthHandler manages registration, login, and logout.
//
// Sessions are stateless: a signed JWT in an HttpOnly cookie. Logging out
// deletes the cookie; the token itself simply expires.
type AuthHandler struct {
	identity *service.IdentityService
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(identity *service.IdentityService, tokens *auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens, logger: logger}
}

type registerRequest struct {
	NID      string `json:"nid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	NID      string `json:"nid"`
	Password string `json:"password"`
}

// HandleRegister creates an applicant account and starts its session.
//
// HTTP: POST /api/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status: "error", Error: "invalid_submission", Message: "invalid request body",
		})
		return
	}

	principal, err := h.identity.Register(r.Context(), req.NID, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// No session yet — the account exists, the applicant logs in next.
	writeSuccess(w, http.StatusCreated, "নিবন্ধন সফল হয়েছে! এখন লগইন করুন।", map[string]any{
		"id": principal.UserID,
	})
}

// HandleLogin verifies credentials and starts a session.
//
// HTTP: POST /api/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status: "error", Error: "invalid_submission", Message: "invalid request body",
		})
		return
	}

	principal, err := h.identity.Authenticate(r.Context(), req.NID, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.issueSession(w, principal); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "লগইন সফল হয়েছে!", map[string]any{
		"id":   principal.UserID,
		"name": principal.Name,
		"role": principal.Role,
	})
}

// HandleLogout deletes the session cookie.
//
// HTTP: POST /api/logout — POST because it changes state; a GET would be
// open to CSRF and prefetching.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(w, http.StatusOK, "logged out", nil)
}

// issueSession signs a token for the principal and sets the session cookie.
func (h *AuthHandler) issueSession(w http.ResponseWriter, principal auth.Principal) error {
	token, err := h.tokens.Generate(principal)
	if err != nil {
		h.logger.Error("token generation failed",
			slog.Int64("userID", principal.UserID),
			slog.String("error", err.Error()),
		)
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
