package handler

import (
	"log/slog"
	"net/http"

	"learnnote/internal/httputil"
	"learnnote/internal/service"
)

// AuthHandler handles credential verification and token renewal
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// loginResponse carries the signed token alongside the verified identity
type loginResponse struct {
	AuthToken string `json:"authToken"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Login verifies email/password and issues a token
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loginResponse{
		AuthToken: token,
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
	})
}

// Refresh re-signs a token for the already-authenticated caller
// POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	token, err := h.authService.Refresh(identity)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"authToken": token})
}
