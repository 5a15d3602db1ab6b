package ticket

import (
	"net/http"

	"cinemabackend/internal/data"
	"cinemabackend/internal/middleware"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /tickets", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionEditTickets, h.list)))
	mux.HandleFunc("GET /tickets/{id}", middleware.APIMiddleware(h.get))
	mux.HandleFunc("GET /tickets/{id}/qr", middleware.APIMiddleware(h.qr))
	mux.HandleFunc("POST /tickets", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionSellTickets, h.purchase)))
	mux.HandleFunc("PUT /tickets/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionEditTickets, h.edit)))
	mux.HandleFunc("DELETE /tickets/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionCancelTickets, h.cancel)))
	mux.HandleFunc("GET /sessions/{id}/occupancy", middleware.APIMiddleware(h.occupancy))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.engine.List()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, tickets)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	found, err := h.engine.Get(id)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, found)
}

// occupancy returns the claimed seat keys for a session so a client can
// render the grid with free and taken seats.
func (h *Handler) occupancy(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	occupancy, err := h.engine.ComputeOccupancy(id)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	keys := make([]string, 0, len(occupancy))
	for key := range occupancy {
		keys = append(keys, key)
	}
	middleware.WriteAPISuccess(w, r, map[string]interface{}{
		"session_id": id,
		"occupied":   keys,
	})
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var input PurchaseInput
	if err := middleware.ParseJSONRequest(r, &input); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	bought, err := h.engine.Purchase(input)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, bought)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	var input EditInput
	if err := middleware.ParseJSONRequest(r, &input); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	input.ID = id
	edited, err := h.engine.Edit(input)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, edited)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}

	refundMethod := r.URL.Query().Get("refund_method")
	if refundMethod == "" {
		middleware.WriteDomainError(w, r, data.Validationf("refund_method query parameter is required"))
		return
	}

	if err := h.engine.Cancel(id, refundMethod); err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, map[string]int{"cancelled": id})
}
