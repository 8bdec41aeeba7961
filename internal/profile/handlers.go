package profile

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"livelocal/internal/api"
	"livelocal/internal/booking"
)

type Handlers struct {
	Profiles *Repository
	Log      *slog.Logger
}

// Me returns the caller's identity and whichever profiles they own.
func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	venue, err := h.Profiles.VenueByOwner(r.Context(), user.ID)
	if err != nil && !errors.Is(err, booking.ErrProfileNotFound) {
		booking.WriteError(w, h.Log, err)
		return
	}
	musician, err := h.Profiles.MusicianByUser(r.Context(), user.ID)
	if err != nil && !errors.Is(err, booking.ErrProfileNotFound) {
		booking.WriteError(w, h.Log, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"venue":    venue,
		"musician": musician,
	})
}

type VenueRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	City     string `json:"city" validate:"max=120"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

func (h Handlers) PutVenue(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req VenueRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	v, err := h.Profiles.UpsertVenue(r.Context(), user.ID, Venue{
		Name:     strings.TrimSpace(req.Name),
		City:     strings.TrimSpace(req.City),
		Capacity: req.Capacity,
	})
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, v)
}

type MusicianRequest struct {
	StageName  string   `json:"stageName" validate:"required,max=200"`
	Genres     []string `json:"genres" validate:"max=10,dive,required,max=40"`
	HourlyRate string   `json:"hourlyRate,omitempty" validate:"omitempty,numeric"`
}

func (h Handlers) PutMusician(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req MusicianRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	m := Musician{StageName: strings.TrimSpace(req.StageName), Genres: normalizeGenres(req.Genres)}
	if req.HourlyRate != "" {
		d, err := decimal.NewFromString(req.HourlyRate)
		if err != nil || d.IsNegative() {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid hourlyRate")
			return
		}
		m.HourlyRate = &d
	}

	out, err := h.Profiles.UpsertMusician(r.Context(), user.ID, m)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, out)
}

func (h Handlers) GetMusician(w http.ResponseWriter, r *http.Request) {
	id, ok := booking.PathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.Profiles.MusicianByID(r.Context(), id)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, m)
}

func (h Handlers) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := booking.PathID(w, r, "id")
	if !ok {
		return
	}
	v, err := h.Profiles.VenueByID(r.Context(), id)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, v)
}

// normalizeGenres lower-cases, trims and de-duplicates genre tags, keeping first-seen order.
func normalizeGenres(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, g := range in {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
