package event

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"livelocal/internal/api"
	"livelocal/internal/booking"
)

// Store is the slice of Repository the handlers use.
type Store interface {
	Create(ctx context.Context, e Event) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	ListOpen(ctx context.Context, from time.Time) ([]Event, error)
	ListByVenue(ctx context.Context, venueID string) ([]Event, error)
	Close(ctx context.Context, id string) (*Event, error)
}

type Handlers struct {
	Events    Store
	Directory booking.Directory
	Log       *slog.Logger
}

type CreateRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=4000"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	Budget      string    `json:"budget,omitempty" validate:"omitempty,numeric"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req CreateRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	venueID, err := h.Directory.VenueIDForOwner(r.Context(), user.ID)
	if errors.Is(err, booking.ErrProfileNotFound) {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only venue owners can post events")
		return
	}
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}

	e := Event{
		VenueID:     venueID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		StartsAt:    req.StartsAt,
	}
	if req.Budget != "" {
		d, err := decimal.NewFromString(req.Budget)
		if err != nil || d.IsNegative() {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid budget")
			return
		}
		e.Budget = &d
	}

	out, err := h.Events.Create(r.Context(), e)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("event created", slog.String("event_id", out.ID), slog.String("venue_id", out.VenueID))
	api.WriteJSON(w, http.StatusCreated, out)
}

// List returns open upcoming events, or every event of one venue with ?venueId=.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []Event
		err   error
	)
	if venueID := r.URL.Query().Get("venueId"); venueID != "" {
		if _, perr := uuid.Parse(venueID); perr != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid venueId")
			return
		}
		items, err = h.Events.ListByVenue(r.Context(), venueID)
	} else {
		items, err = h.Events.ListOpen(r.Context(), time.Now())
	}
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := booking.PathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.Events.GetByID(r.Context(), id)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, e)
}

func (h Handlers) Close(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	id, ok := booking.PathID(w, r, "id")
	if !ok {
		return
	}

	e, err := h.Events.GetByID(r.Context(), id)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	owner, err := h.Directory.VenueOwnerID(r.Context(), e.VenueID)
	if err != nil && !errors.Is(err, booking.ErrProfileNotFound) {
		booking.WriteError(w, h.Log, err)
		return
	}
	if owner != user.ID {
		booking.WriteError(w, h.Log, booking.ErrNotParticipant)
		return
	}

	if CanTransition(e.Status, StatusClosed) {
		e, err = h.Events.Close(r.Context(), id)
		if err != nil {
			booking.WriteError(w, h.Log, err)
			return
		}
	}
	api.WriteJSON(w, http.StatusOK, e)
}
