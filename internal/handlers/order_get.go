package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
)

// OrderGetter defines the interface that the order lookup service must
// implement.
type OrderGetter interface {
	Get(ctx context.Context, orderID, userID int64) (*models.OrderDB, error)
}

// NewOrderGetHandler returns an HTTP handler fetching one order owned
// by the authenticated user. A missing order is 404; an existing order
// owned by someone else is 403, never the other way around.
// @Summary Get an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.OrderDB
// @Failure 400 {object} handlers.ErrorResponse "Non-numeric ID"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Order belongs to another user"
// @Failure 404 {object} handlers.ErrorResponse "Order not found"
// @Router /orders/{id} [get]
func NewOrderGetHandler(svc OrderGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}

		orderID, ok := parsePathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid order ID", "Order ID must be a number")
			return
		}

		order, err := svc.Get(r.Context(), orderID, user.ID)
		if err != nil {
			writeOrderError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

// writeOrderError maps order ownership failures to their statuses and
// everything else to a generic 500.
func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found", "No order exists with that ID")
	case errors.Is(err, services.ErrOrderForbidden):
		writeError(w, http.StatusForbidden, "Forbidden", "You do not have permission to access this order")
	default:
		writeInternalError(w, err)
	}
}
