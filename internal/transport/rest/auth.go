package rest

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/heartmarshall/howzue/internal/domain"
)

type tokenIssuer interface {
	GenerateAccessToken(id domain.Identity) (string, time.Time, error)
}

// AuthHandler exchanges an e-mail address (or a guest request) for an identity token.
// Proving ownership of the address is left to an outer identity provider.
type AuthHandler struct {
	tokens tokenIssuer
	log    *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(tokens tokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Email string `json:"email"`
	Guest bool   `json:"guest"`
}

type loginResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	Identity    domain.Identity `json:"identity"`
	Guest       bool            `json:"guest"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	id := domain.GuestIdentity
	if !req.Guest {
		email := strings.TrimSpace(req.Email)
		if _, err := mail.ParseAddress(email); err != nil || email == "" {
			respondError(w, r, h.log, domain.NewValidationError("email", "must be a valid e-mail address"))
			return
		}
		id = domain.IdentityFromEmail(email)
	}

	token, expires, err := h.tokens.GenerateAccessToken(id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "login", slog.String("identity", id.String()), slog.Bool("guest", req.Guest))
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		ExpiresAt:   expires,
		Identity:    id,
		Guest:       req.Guest,
	})
}
