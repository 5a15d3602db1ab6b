package session

import (
	"net/http"
	"strconv"
	"time"

	"cinemabackend/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /sessions", middleware.APIMiddleware(h.list))
	mux.HandleFunc("GET /sessions/{id}", middleware.APIMiddleware(h.get))
	mux.HandleFunc("POST /sessions", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageSessions, h.create)))
	mux.HandleFunc("PUT /sessions/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageSessions, h.update)))
	mux.HandleFunc("DELETE /sessions/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageSessions, h.delete)))
}

// list supports ?movie=, ?room= and ?date=YYYY-MM-DD filters.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter Filter

	if movieStr := r.URL.Query().Get("movie"); movieStr != "" {
		movieID, err := strconv.Atoi(movieStr)
		if err != nil {
			middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid movie filter", "")
			return
		}
		filter.MovieID = movieID
	}
	if roomStr := r.URL.Query().Get("room"); roomStr != "" {
		roomID, err := strconv.Atoi(roomStr)
		if err != nil {
			middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid room filter", "")
			return
		}
		filter.Room = roomID
	}
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid date filter, expected YYYY-MM-DD", "")
			return
		}
		filter.Date = &date
	}

	sessions, err := h.svc.List(filter)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, sessions)
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
	var input Input
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
	var input Input
	if err := middleware.ParseJSONRequest(r, &input); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	updated, err := h.svc.Update(id, input)
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
