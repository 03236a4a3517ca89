// AngelaMos | 2026
// handler.go

package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/events", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Get("/hosted", h.ListHosted)
		r.Get("/{eventID}", h.GetEventDetail)
		r.Put("/{eventID}", h.UpdateEvent)
		r.Delete("/{eventID}", h.DeleteEvent)
		r.Post("/{eventID}/make-public", h.MakeEventPublic)
	})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	params := ListEventsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 6),
		Date:     r.URL.Query().Get("date"),
		Location: r.URL.Query().Get("location"),
	}
	params.Normalize()

	events, total, err := h.service.List(r.Context(), actor, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToEventResponseList(events),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	event, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only admins and premium users can create events")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToEventResponse(event))
}

func (h *Handler) ListHosted(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	events, err := h.service.ListHosted(r.Context(), actor)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToEventResponseList(events))
}

func (h *Handler) GetEventDetail(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	detail, err := h.service.Detail(r.Context(), actor, eventID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, detail)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	event, err := h.service.Update(r.Context(), actor, eventID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToEventResponse(event))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	if err := h.service.Delete(r.Context(), actor, eventID); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only admins can delete events")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) MakeEventPublic(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	eventID := chi.URLParam(r, "eventID")

	event, err := h.service.MakePublic(r.Context(), actor, eventID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only admins can change event visibility")
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "ALREADY_PUBLIC", "event is already public")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "event")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToEventResponse(event))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
