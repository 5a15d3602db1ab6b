package ticket

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"cinemabackend/internal/logger"
	"cinemabackend/internal/middleware"
)

const qrSize = 256

// qr serves a PNG QR code of the ticket reference for entry verification.
func (h *Handler) qr(w http.ResponseWriter, r *http.Request) {
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

	png, err := qrcode.Encode(found.Reference, qrcode.Medium, qrSize)
	if err != nil {
		logger.LogError("Failed to encode QR for ticket %d: %v", id, err)
		middleware.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error",
			"Could not generate QR code", "")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
