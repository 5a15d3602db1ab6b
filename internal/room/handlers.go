package room

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
	mux.HandleFunc("GET /rooms", middleware.APIMiddleware(h.list))
	mux.HandleFunc("GET /rooms/{id}", middleware.APIMiddleware(h.get))
	mux.HandleFunc("POST /rooms", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageRooms, h.create)))
	mux.HandleFunc("PUT /rooms/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageRooms, h.update)))
	mux.HandleFunc("PUT /rooms/{id}/resize", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageRooms, h.resize)))
	mux.HandleFunc("DELETE /rooms/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageRooms, h.delete)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, rooms)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	found, err := h.svc.Get(id)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, found)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := middleware.ParseJSONRequest(r, &input); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	created, err := h.svc.Create(input)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	var body data.Room
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	body.ID = id
	updated, err := h.svc.Update(body)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, updated)
}

func (h *Handler) resize(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	var body struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	}
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	resized, err := h.svc.Resize(id, body.Rows, body.Cols)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, resized)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	if err := h.svc.Delete(id); err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, map[string]int{"deleted": id})
}
