package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
)

// OrderCreator defines the interface that the order creation service
// must implement.
type OrderCreator interface {
	Create(ctx context.Context, userID int64, date time.Time) (*models.OrderDB, error)
}

// OrderCreateRequest represents the JSON body for order creation
// swagger:model OrderCreateRequest
type OrderCreateRequest struct {
	// Order date
	// required: true
	// example: 2024-01-01
	Date string `json:"date"`
}

// NewOrderCreateHandler returns an HTTP handler creating an empty order
// for the authenticated user. The total starts at zero.
// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderCreateRequest body handlers.OrderCreateRequest true "Order creation request"
// @Success 201 {object} models.OrderDB
// @Failure 400 {object} handlers.ErrorResponse "Missing or invalid date"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Router /orders [post]
func NewOrderCreateHandler(svc OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}

		var req OrderCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Bad Request", "Request body is required")
			return
		}

		if req.Date == "" {
			writeError(w, http.StatusBadRequest, "Missing required field", "Date is required")
			return
		}

		date, err := parseOrderDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", "Date must be YYYY-MM-DD or RFC 3339")
			return
		}

		order, err := svc.Create(r.Context(), user.ID, date)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func parseOrderDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
