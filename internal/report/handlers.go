package report

import (
	"net/http"
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
	mux.HandleFunc("GET /reports/sales", middleware.APIMiddleware(
		middleware.RequireAction(middleware.ActionViewReports, h.sales)))
}

// sales supports optional ?from= and ?to= bounds (YYYY-MM-DD, local time).
// The to-bound is inclusive of the whole day.
func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	var within Range

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid from date, expected YYYY-MM-DD", "")
			return
		}
		within.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			middleware.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid to date, expected YYYY-MM-DD", "")
			return
		}
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		within.To = &end
	}

	summary, err := h.svc.Build(within)
	if err != nil {
		middleware.WriteDomainError(w, r, err)
		return
	}
	middleware.WriteAPISuccess(w, r, summary)
}
