package handler

import (
	"net/http"

	"github.com/Rrens/llm-query-gateway/internal/api/middleware"
	"github.com/Rrens/llm-query-gateway/internal/api/response"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := decodeAndValidate(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if response.StatusFor(err) == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		response.Error(w, err)
		return
	}

	response.OK(w, token)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	response.OK(w, user)
}
