package handler

import (
	"net/http"

	"github.com/Rrens/llm-query-gateway/internal/api/response"
	"github.com/Rrens/llm-query-gateway/internal/service"
)

// UserHandler exposes read access to stored users
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List returns every user
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, users)
}

// Get returns one user
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.authService.GetUser(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, user)
}
