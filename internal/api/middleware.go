package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"livelocal/pkg/config"
	"livelocal/pkg/supabase"
)

// SessionAuth validates Supabase access tokens.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// Outside prod, a missing or invalid token falls back to an `X-User-ID: <uuid>` header so the
// API can be exercised locally without a Supabase project.
func SessionAuth(cfg config.Config, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				vu, err := supabase.VerifyAccessToken(token, cfg.Supabase.JWTSecret, cfg.Supabase.JWTAudience, time.Now())
				if err == nil {
					u := &User{ID: vu.UserID, Email: vu.Email}
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
				log.Debug("access token rejected", slog.String("error", err.Error()))
				if cfg.IsProd() || r.Header.Get("X-User-ID") == "" {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid access token")
					return
				}
			}

			if !cfg.IsProd() {
				if u, ok := devUser(r); ok {
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
			}

			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
		})
	}
}

func devUser(r *http.Request) (*User, bool) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		return nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	return &User{ID: parsed.String()}, true
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.Info("http request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recovery turns a handler panic into a 500 with the standard error envelope.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("panic recovered",
						slog.Any("error", rec),
						slog.String("request_id", middleware.GetReqID(r.Context())),
						slog.String("stack", string(debug.Stack())),
					)
					WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
