package handlers

import (
	"context"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
)

// LineItemLister defines the interface that the line-item listing
// service must implement.
type LineItemLister interface {
	ListProducts(ctx context.Context, orderID, userID int64) ([]models.OrderProductDetailDB, error)
}

// NewOrderProductListHandler returns an HTTP handler listing the line
// items of an order owned by the authenticated user.
// @Summary List products in an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {array} models.OrderProductDetailDB
// @Failure 400 {object} handlers.ErrorResponse "Non-numeric ID"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Order belongs to another user"
// @Failure 404 {object} handlers.ErrorResponse "Order not found"
// @Router /orders/{id}/products [get]
func NewOrderProductListHandler(svc LineItemLister) http.HandlerFunc {
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

		items, err := svc.ListProducts(r.Context(), orderID, user.ID)
		if err != nil {
			writeOrderError(w, err)
			return
		}

		if items == nil {
			items = []models.OrderProductDetailDB{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}
