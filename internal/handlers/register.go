package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username"`

	// Password
	// required: true
	// example: pw123
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique username and returns it with a bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User created"
// @Failure 400 {object} handlers.ErrorResponse "Missing username or password"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Bad Request", "Request body is required")
			return
		}

		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields", "Username and password are required")
			return
		}

		user, token, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				writeError(w, http.StatusConflict, "Username already exists", "Please choose a different username")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			User: UserPayload{
				ID:        user.ID,
				Username:  user.Username,
				CreatedAt: user.CreatedAt,
			},
			Token: token,
		})
	}
}
