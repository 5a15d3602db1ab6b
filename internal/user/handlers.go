package user

import (
	"net/http"

	"cinemabackend/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /users", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageUsers, h.list)))
	mux.HandleFunc("GET /users/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageUsers, h.get)))
	mux.HandleFunc("POST /users", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageUsers, h.create)))
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, users)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	found, err := h.svc.GetByID(id)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, found)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	created, err := h.svc.Create(body.Name, body.Email, body.Role)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, created)
}
