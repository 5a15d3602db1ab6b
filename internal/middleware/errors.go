package middleware

import (
	"net/http"
	"strconv"

	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
)

// WriteDomainError maps the shared error taxonomy onto HTTP statuses.
// Validation and conflict messages are safe to surface verbatim; anything
// else is logged and reported generically.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case data.IsValidation(err):
		WriteAPIError(w, r, http.StatusBadRequest, "validation_failed", err.Error(), "")
	case data.IsNotFound(err):
		WriteAPIError(w, r, http.StatusNotFound, "not_found", err.Error(), "")
	case data.IsConflict(err):
		WriteAPIError(w, r, http.StatusConflict, "conflict", err.Error(), "")
	default:
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		WriteAPIError(w, r, http.StatusInternalServerError, "internal_error",
			"The operation could not be completed", "")
	}
}

// PathID parses the {id} path segment.
func PathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, data.Validationf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}
