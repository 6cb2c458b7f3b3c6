package middleware

import (
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/ratelimit"
)

// ErrRateLimited is the error body sent with 429 responses.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit returns middleware that counts each request against rules,
// keyed by scope and client IP. Requests over a limit receive 429 with a
// Retry-After header. Limiter failures are logged and the request proceeds.
func RateLimit(limiter ratelimit.Limiter, scope string, rules []ratelimit.Rule, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || len(rules) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := scope + ":" + ClientIP(r)

			decision, err := limiter.Allow(r.Context(), key, rules...)
			if err != nil {
				logger.Warn("rate limit check failed", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
				logger.Info(
					"rate limited",
					"scope", scope,
					"rule", decision.Rule.String(),
					"addr", r.RemoteAddr,
				)
				handlers.RespondError(w, logger, http.StatusTooManyRequests, ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host portion of the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
