package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"livelocal/internal/api"
	"livelocal/internal/booking"
	"livelocal/internal/event"
	"livelocal/internal/profile"
	"livelocal/internal/review"
	"livelocal/pkg/config"
)

type Dependencies struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Log      *slog.Logger
	Notifier booking.Notifier
}

func NewRouter(deps Dependencies) http.Handler {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.Recovery(log))
	r.Use(api.RequestLogger(log))
	r.Use(api.CORSMiddleware(api.CORSOptions{
		AllowedOrigins: deps.Cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-User-ID"},
		MaxAgeSeconds:  600,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	profiles := profile.NewRepository(deps.DB)
	events := event.NewRepository(deps.DB)
	bookings := booking.NewRepository(deps.DB, log)
	reviews := review.NewRepository(deps.DB)

	bookingService := booking.NewService(bookings, events, profiles, log)

	profileHandlers := profile.Handlers{Profiles: profiles, Log: log}
	eventHandlers := event.Handlers{Events: events, Directory: profiles, Log: log}
	bookingHandlers := booking.Handlers{
		Service: bookingService,
		Executor: booking.NewExecutor(bookings,
			booking.WithLogger(log),
			booking.WithStoreTimeout(deps.Cfg.StoreTimeout),
			booking.WithNotifier(deps.Notifier),
		),
		Log: log,
	}
	reviewHandlers := review.Handlers{Reviews: reviews, Bookings: bookingService, Log: log}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/cancellation-reasons", bookingHandlers.CancellationReasons)

		r.Group(func(r chi.Router) {
			// Production: Supabase access token.
			// Dev: falls back to X-User-ID when Authorization is missing.
			r.Use(api.SessionAuth(deps.Cfg, log))

			r.Get("/me", profileHandlers.Me)
			r.Put("/me/venue", profileHandlers.PutVenue)
			r.Put("/me/musician", profileHandlers.PutMusician)
			r.Get("/venues/{id}", profileHandlers.GetVenue)
			r.Get("/musicians/{id}", profileHandlers.GetMusician)

			r.Post("/events", eventHandlers.Create)
			r.Get("/events", eventHandlers.List)
			r.Get("/events/{id}", eventHandlers.Get)
			r.Post("/events/{id}/close", eventHandlers.Close)
			r.Post("/events/{id}/applications", bookingHandlers.Apply)
			r.Post("/events/{id}/invitations", bookingHandlers.Invite)
			r.Get("/events/{id}/bookings", bookingHandlers.ListForEvent)

			bookingHandlers.Routes(r)
			r.Get("/bookings/{id}/reviews", reviewHandlers.List)
			r.Post("/bookings/{id}/reviews", reviewHandlers.Create)
		})
	})

	return r
}
