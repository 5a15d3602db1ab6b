package settings

import (
	"net/http"

	"cinemabackend/internal/data"
	"cinemabackend/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /settings", middleware.APIMiddleware(h.get))
	mux.HandleFunc("PUT /settings", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageSettings, h.update)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.Get()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, current)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var body data.Settings
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	updated, err := h.svc.Update(body)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, updated)
}
