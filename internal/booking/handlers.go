package booking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"livelocal/internal/api"
)

type Handlers struct {
	Service  *Service
	Executor *Executor
	Log      *slog.Logger
}

// Routes registers the booking endpoints on r. Callers supply authentication.
func (h Handlers) Routes(r chi.Router) {
	r.Get("/bookings", h.ListMine)
	r.Get("/bookings/{id}", h.Get)
	r.Get("/bookings/{id}/actions", h.Actions)
	r.Post("/bookings/{id}/transitions", h.Transition)
	r.Post("/bookings/{id}/cancel-request", h.RequestCancellation)
	r.Get("/bookings/{id}/activity", h.Activity)
	r.Get("/bookings/{id}/events", h.Events)
}

// View is a booking as seen by one participant.
type View struct {
	Booking *Booking     `json:"booking"`
	Role    Role         `json:"role"`
	Actions []Transition `json:"actions"`
}

func newView(b *Booking, role Role) View {
	actions := AllowedTransitions(b.Status, role)
	if actions == nil {
		actions = []Transition{}
	}
	return View{Booking: b, Role: role, Actions: actions}
}

type ApplyRequest struct {
	Pitch        string `json:"pitch" validate:"max=2000"`
	ProposedRate string `json:"proposedRate,omitempty" validate:"omitempty,numeric"`
}

func (h Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	user, eventID, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	in := ApplyInput{Pitch: req.Pitch}
	if req.ProposedRate != "" {
		d, err := decimal.NewFromString(req.ProposedRate)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid proposedRate")
			return
		}
		in.ProposedRate = &d
	}

	b, err := h.Service.Apply(r.Context(), user.ID, eventID, in)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, newView(b, RoleMusician))
}

type InviteRequest struct {
	MusicianID string `json:"musicianId" validate:"required,uuid"`
}

func (h Handlers) Invite(w http.ResponseWriter, r *http.Request) {
	user, eventID, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	var req InviteRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	b, err := h.Service.Invite(r.Context(), user.ID, eventID, req.MusicianID)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, newView(b, RoleVenue))
}

func (h Handlers) ListForEvent(w http.ResponseWriter, r *http.Request) {
	user, eventID, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	items, err := h.Service.ListForEvent(r.Context(), user.ID, eventID)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	as, err := ParseRole(r.URL.Query().Get("as"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "as must be venue or musician")
		return
	}

	items, err := h.Service.ListMine(r.Context(), user.ID, as)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}
	requested, ok := requestedRole(w, r.URL.Query().Get("role"))
	if !ok {
		return
	}

	b, role, err := h.Service.Load(r.Context(), id, user.ID, requested)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, newView(b, role))
}

func (h Handlers) Actions(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}
	requested, ok := requestedRole(w, r.URL.Query().Get("role"))
	if !ok {
		return
	}

	b, role, err := h.Service.Load(r.Context(), id, user.ID, requested)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	v := newView(b, role)
	api.WriteJSON(w, http.StatusOK, map[string]any{"role": v.Role, "items": v.Actions})
}

type TransitionRequest struct {
	Action      string `json:"action,omitempty" validate:"omitempty,oneof=select confirm complete cancel"`
	Target      string `json:"target,omitempty" validate:"required_without=Action"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=venue musician"`
	Reason      string `json:"reason,omitempty"`
	OtherReason string `json:"otherReason,omitempty" validate:"max=500"`
}

func (h Handlers) Transition(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	var target Status
	if req.Target != "" {
		st, err := ParseStatus(req.Target)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid target status")
			return
		}
		target = st
	}
	requested, ok := requestedRole(w, req.Role)
	if !ok {
		return
	}

	_, role, err := h.Service.Load(r.Context(), id, user.ID, requested)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}

	cmd := Command{
		BookingID:   id,
		Action:      Action(req.Action),
		Target:      target,
		ActorID:     user.ID,
		ActorRole:   role,
		Reason:      CancellationReason(req.Reason),
		OtherReason: req.OtherReason,
	}
	var refreshed *Booking
	if _, err := h.Executor.Execute(r.Context(), cmd, func(b *Booking) { refreshed = b }); err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, newView(refreshed, role))
}

type CancelRequestRequest struct {
	Role string `json:"role,omitempty" validate:"omitempty,oneof=venue musician"`
}

func (h Handlers) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	var req CancelRequestRequest
	if r.ContentLength != 0 {
		if err := api.DecodeJSON(r, &req); err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
			return
		}
	}
	requested, ok := requestedRole(w, req.Role)
	if !ok {
		return
	}

	b, role, err := h.Service.RequestCancellation(r.Context(), id, user.ID, requested)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, newView(b, role))
}

func (h Handlers) Activity(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	items, err := h.Service.Activity(r.Context(), id, user.ID)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	items, err := h.Service.History(r.Context(), id, user.ID)
	if err != nil {
		WriteError(w, h.Log, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) CancellationReasons(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": CancellationReasons})
}

func (h Handlers) userAndID(w http.ResponseWriter, r *http.Request) (*api.User, string, bool) {
	user := api.UserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return nil, "", false
	}
	id, ok := PathID(w, r, "id")
	return user, id, ok
}

// PathID reads a UUID route parameter, writing a 400 when it is missing or malformed.
func PathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing "+name)
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid "+name)
		return "", false
	}
	return id.String(), true
}

func requestedRole(w http.ResponseWriter, raw string) (Role, bool) {
	if raw == "" {
		return "", true
	}
	role, err := ParseRole(raw)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "role must be venue or musician")
		return "", false
	}
	return role, true
}

// nginx's code for a client that closed the connection before the response.
const statusClientClosedRequest = 499

// WriteError maps workflow errors onto the API error envelope.
func WriteError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr ValidationError
	var terr TransitionError
	switch {
	case errors.As(err, &verr):
		api.WriteError(w, http.StatusBadRequest, verr.Code, verr.Message)
	case errors.As(err, &terr):
		api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", terr.Error())
	case errors.Is(err, ErrBookingNotFound):
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
	case errors.Is(err, ErrEventNotFound):
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "event not found")
	case errors.Is(err, ErrProfileNotFound):
		api.WriteError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "profile not found")
	case errors.Is(err, ErrNotParticipant):
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrAmbiguousRole):
		api.WriteError(w, http.StatusBadRequest, "ROLE_REQUIRED", err.Error())
	case errors.Is(err, ErrInvalidRole):
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, ErrStatusConflict):
		api.WriteError(w, http.StatusConflict, "STATUS_CONFLICT", "booking changed; reload and try again")
	case errors.Is(err, ErrAlreadyApplied):
		api.WriteError(w, http.StatusConflict, "ALREADY_APPLIED", err.Error())
	case errors.Is(err, ErrEventClosed):
		api.WriteError(w, http.StatusConflict, "EVENT_CLOSED", err.Error())
	case errors.Is(err, ErrBookingFinalized):
		api.WriteError(w, http.StatusConflict, "BOOKING_FINALIZED", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		api.WriteError(w, http.StatusGatewayTimeout, "STORE_TIMEOUT", "the booking store did not respond in time")
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads the body.
		if log != nil {
			log.Debug("request canceled", slog.String("error", err.Error()))
		}
		w.WriteHeader(statusClientClosedRequest)
	default:
		if log != nil {
			log.Error("request failed", slog.String("error", err.Error()))
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
