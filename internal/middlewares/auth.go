package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/jwt"
	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
)

// Tokener defines the token operations needed by the auth middlewares.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserGetter resolves a token's user id to a stored user record.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

type authErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// resolveUser runs the shared token-resolution step: extract the bearer
// token, verify it, and look up the user it names. Both middleware
// variants are built on it; they differ only in what a failure means.
func resolveUser(tokener Tokener, users UserGetter, r *http.Request) (*models.AuthUser, error) {
	ctx := r.Context()

	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	claims, err := tokener.GetClaims(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, jwt.ErrInvalidToken
	}

	return &models.AuthUser{ID: user.ID, Username: user.Username}, nil
}

// RequireUser returns a middleware that gates requests on a resolved
// identity. A missing token, failed verification, or unknown user id
// short-circuits the request with 401; on success the identity is
// attached to the request context.
func RequireUser(tokener Tokener, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveUser(tokener, users, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(authErrorResponse{
					Error:   "Unauthorized",
					Message: authFailureMessage(err),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(r.Context(), user)))
		})
	}
}

// UserFromToken returns a middleware that performs the same resolution
// as RequireUser but never blocks the request: any failure is swallowed
// and the chain proceeds without an identity attached.
func UserFromToken(tokener Tokener, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := resolveUser(tokener, users, r); err == nil {
				r = r.WithContext(SetUserToContext(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authFailureMessage(err error) string {
	switch err {
	case jwt.ErrExpiredToken:
		return "Token has expired"
	case jwt.ErrInvalidToken:
		return "Invalid token"
	default:
		return "Authentication required"
	}
}

type userContextKey struct{}

var userKey = userContextKey{}

// SetUserToContext attaches the resolved identity to the context.
func SetUserToContext(ctx context.Context, user *models.AuthUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the resolved identity from the context.
// Returns nil if no identity is attached.
func GetUserFromContext(ctx context.Context) *models.AuthUser {
	user, _ := ctx.Value(userKey).(*models.AuthUser)
	return user
}
