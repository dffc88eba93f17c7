package handler

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/response"
)

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness only; it does not probe dependencies.
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// NotFound answers every unmatched route.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	response.Fail(w, http.StatusNotFound, "Route not found")
}
