package movie

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
	mux.HandleFunc("GET /movies", middleware.APIMiddleware(h.list))
	mux.HandleFunc("GET /movies/{id}", middleware.APIMiddleware(h.get))
	mux.HandleFunc("POST /movies", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageMovies, h.create)))
	mux.HandleFunc("PUT /movies/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageMovies, h.update)))
	mux.HandleFunc("DELETE /movies/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageMovies, h.delete)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.List()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, movies)
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
	var body data.Movie
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	created, err := h.svc.Create(body)
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
	var body data.Movie
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
