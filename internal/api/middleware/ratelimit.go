package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/api/response"
	"github.com/Rrens/llm-query-gateway/internal/repository/redis"
)

// Limiter counts requests per key
type Limiter interface {
	Allow(ctx context.Context, key string) (redis.Decision, error)
}

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	limiter Limiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit applies rate limiting based on the authenticated user. It must run
// after Authenticate.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			response.Detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		decision, err := m.limiter.Allow(r.Context(), "user:"+strconv.FormatInt(user.ID, 10))
		if err != nil {
			// If rate limiter fails, allow the request but log the error
			log.Warn().Err(err).Int64("user_id", user.ID).Msg("Rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		w.Header().Set("X-RateLimit-Reset", decision.ResetAt.UTC().Format("2006-01-02T15:04:05Z"))

		if !decision.Allowed {
			response.Detail(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
