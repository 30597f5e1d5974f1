package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rrens/llm-query-gateway/internal/api/response"
	"github.com/Rrens/llm-query-gateway/internal/domain"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// TokenResolver turns a bearer token into the user it names
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	resolver TokenResolver
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate requires a valid bearer token and stores the resolved user
// in the request context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			response.Detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := m.resolver.ResolveToken(r.Context(), token)
		if err != nil {
			if response.StatusFor(err) == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			response.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUser gets the authenticated user from context
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}
