package review

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"livelocal/internal/api"
	"livelocal/internal/booking"
)

type Store interface {
	Create(ctx context.Context, rv Review) (*Review, error)
	ListByBooking(ctx context.Context, bookingID string) ([]Review, error)
}

type Handlers struct {
	Reviews  Store
	Bookings *booking.Service
	Log      *slog.Logger
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	id, ok := booking.PathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.Bookings.View(r.Context(), id, user.ID); err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	items, err := h.Reviews.ListByBooking(r.Context(), id)
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type CreateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
	Role    string `json:"role,omitempty" validate:"omitempty,oneof=venue musician"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	id, ok := booking.PathID(w, r, "id")
	if !ok {
		return
	}

	var req CreateRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	b, role, err := h.Bookings.Load(r.Context(), id, user.ID, booking.Role(req.Role))
	if err != nil {
		booking.WriteError(w, h.Log, err)
		return
	}
	if err := CanReview(b.Status, role); err != nil {
		writeError(w, h.Log, err)
		return
	}

	out, err := h.Reviews.Create(r.Context(), Review{
		BookingID:  b.ID,
		AuthorID:   user.ID,
		AuthorRole: role,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, out)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrAlreadyReviewed):
		api.WriteError(w, http.StatusConflict, "ALREADY_REVIEWED", err.Error())
	case errors.Is(err, ErrNotReviewable):
		api.WriteError(w, http.StatusConflict, "NOT_REVIEWABLE", err.Error())
	default:
		booking.WriteError(w, log, err)
	}
}
