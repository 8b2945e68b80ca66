package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DreamWeaver-code/Market/internal/logger"
)

// ErrorResponse is the uniform error body: a short error kind plus a
// human-readable message. Internal detail is never echoed to clients.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error kind
	// example: Not Found
	Error string `json:"error"`

	// Human-readable message
	// example: No order exists with that ID
	Message string `json:"message"`
}

// UserPayload is the public shape of a user in auth responses.
// swagger:model UserPayload
type UserPayload struct {
	// User ID
	// example: 1
	ID int64 `json:"id"`

	// Username
	// example: alice
	Username string `json:"username"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

func writeInternalError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error", "Something went wrong")
}
