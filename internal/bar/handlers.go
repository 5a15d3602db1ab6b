package bar

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
	mux.HandleFunc("GET /bar/products", middleware.APIMiddleware(h.list))
	mux.HandleFunc("GET /bar/products/{id}", middleware.APIMiddleware(h.get))
	mux.HandleFunc("POST /bar/products", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageBar, h.create)))
	mux.HandleFunc("PUT /bar/products/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageBar, h.update)))
	mux.HandleFunc("DELETE /bar/products/{id}", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionManageBar, h.delete)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.GetProducts()
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathID(r)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	found, err := h.svc.GetProduct(id)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, found)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body data.Product
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	created, err := h.svc.CreateProduct(body)
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
	var body data.Product
	if err := middleware.ParseJSONRequest(r, &body); err != nil {
		middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	body.ID = id
	updated, err := h.svc.UpdateProduct(body)
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
	if err := h.svc.DeleteProduct(id); err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, map[string]int{"deleted": id})
}
