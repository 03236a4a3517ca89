// AngelaMos | 2026
// handler.go

package reminder

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/eventhub/internal/core"
)

// Handler exposes the manual dispatch trigger for schedulers that call in
// over HTTP instead of running the reminderd binary.
type Handler struct {
	dispatcher *Dispatcher
}

func NewHandler(dispatcher *Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/reminders", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/dispatch", h.TriggerDispatch)
	})
}

func (h *Handler) TriggerDispatch(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dispatcher.Dispatch(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}
