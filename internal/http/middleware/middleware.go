// Package middleware holds the request pipeline pieces shared by all routes:
// profile token checks, request logging and chat rate limiting.
package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/storefront-assistant/internal/auth"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/rate_limiter"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	profileIDKey = contextKey("profile_id")
	logEntryKey  = contextKey("log_entry")
)

// TokenParser turns a bearer token into a profile id.
type TokenParser interface {
	Parse(token string) (string, error)
}

func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// ProfileID returns the profile of the request, if a valid token was sent.
func ProfileID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileIDKey).(string)
	return id, ok && id != ""
}

// RequireProfile rejects requests without a valid profile token.
func RequireProfile(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			profileID, err := tokens.Parse(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfileID(r.Context(), profileID)))
		})
	}
}

// OptionalProfile attaches the profile of a valid token and otherwise lets the
// request through untouched.
func OptionalProfile(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if profileID, err := tokens.Parse(token); err == nil {
					r = r.WithContext(WithProfileID(r.Context(), profileID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit answers 429 once a profile (or, without one, a client address)
// exceeds its budget.
func RateLimit(l *rate_limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := ProfileID(r.Context())
			if !ok {
				key = r.RemoteAddr
			}
			if !l.Allow(key) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request and stores a request scoped entry
// that handlers get back with Logger.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := log.WithFields(logrus.Fields{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logEntryKey, entry)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry.WithFields(logrus.Fields{
				"status":   status,
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			}).Debug("request complete")
		})
	}
}

// Logger returns the request scoped log entry, or fallback outside of
// RequestLogger.
func Logger(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if entry, ok := ctx.Value(logEntryKey).(logrus.FieldLogger); ok {
		return entry
	}
	return fallback
}

func bearerToken(r *http.Request) (string, bool) {
	return auth.FromHeader(r.Header.Get("Authorization"))
}
