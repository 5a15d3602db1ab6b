package auditlog

import (
	"net/http"

	"cinemabackend/internal/middleware"
)

type Handler struct {
	sink *Sink
}

func NewHandler(sink *Sink) *Handler {
	return &Handler{sink: sink}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /logs", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionViewLogs, h.list)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.sink.List()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, entries)
}
