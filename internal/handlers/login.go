package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username"`

	// Password
	// required: true
	// example: pw123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates a user and returns it with a bearer token. An unknown username and a wrong password produce the same response.
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Authenticated"
// @Failure 400 {object} handlers.ErrorResponse "Missing username or password"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Bad Request", "Request body is required")
			return
		}

		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields", "Username and password are required")
			return
		}

		user, token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials", "Username or password is incorrect")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			User: UserPayload{
				ID:        user.ID,
				Username:  user.Username,
				CreatedAt: user.CreatedAt,
			},
			Token: token,
		})
	}
}
