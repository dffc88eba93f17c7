// Package response writes the JSON envelope every endpoint answers with.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.uber.org/zap"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int64 `json:"total,omitempty"`
	Page    *int   `json:"page,omitempty"`
	Pages   *int   `json:"pages,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Paginated writes a page with its count, total, page and pages fields.
func Paginated[T any](w http.ResponseWriter, page domain.Page[T]) {
	count := len(page.Items)
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Count:   &count,
		Total:   &page.Total,
		Page:    &page.Page,
		Pages:   &page.Pages,
		Data:    page.Items,
	})
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Error maps a domain error to its status code. Unclassified errors are
// logged and reported without detail.
func Error(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Fail(w, http.StatusBadRequest, detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrConflict):
		Fail(w, http.StatusBadRequest, detail(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, detail(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrNotFound):
		Fail(w, http.StatusNotFound, detail(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrTooManyRequests):
		Fail(w, http.StatusTooManyRequests, "Too many enquiries, please try again later")
	case errors.Is(err, domain.ErrMedia):
		log.Error("Media store failure", zap.Error(err))
		JSON(w, http.StatusBadGateway, Envelope{Success: false, Message: "Media upload failed", Error: detail(err, domain.ErrMedia)})
	default:
		log.Error("Unhandled error", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Server error")
	}
}

// detail strips the sentinel's own text so the client sees only the
// specific reason, capitalized.
func detail(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
		msg = trimmed
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
