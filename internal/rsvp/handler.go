// AngelaMos | 2026
// handler.go

package rsvp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/rsvps", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/mine", h.MyEvents)
		r.Put("/{eventID}", h.UpsertRSVP)
		r.Delete("/{eventID}", h.RemoveRSVP)
		r.Get("/{eventID}/guests", h.GuestList)
		r.Delete("/{eventID}/users/{userID}", h.RemoveUserRSVP)
	})
}

func (h *Handler) UpsertRSVP(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	var req UpsertRSVPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rsvp, err := h.service.Upsert(r.Context(), actor, eventID, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "status must be going, maybe, or not_going")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRSVPResponse(rsvp))
}

func (h *Handler) RemoveRSVP(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	if err := h.service.Remove(r.Context(), actor, eventID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rsvp")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) RemoveUserRSVP(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")
	targetUserID := chi.URLParam(r, "userID")

	err := h.service.RemoveUser(r.Context(), actor, eventID, targetUserID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the host or an admin can remove RSVPs")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rsvp")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GuestList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	guests, err := h.service.GuestList(r.Context(), actor, eventID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the host or an admin can view the roster")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, guests)
}

func (h *Handler) MyEvents(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	events, err := h.service.MyEvents(r.Context(), actor)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, events)
}
