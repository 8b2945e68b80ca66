package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
)

// LineItemAdder defines the interface that the line-item service must
// implement.
type LineItemAdder interface {
	AddProduct(ctx context.Context, orderID, productID int64, quantity int, userID int64) (*models.OrderProductDB, error)
}

// OrderProductAddRequest represents the JSON body for adding a product
// to an order
// swagger:model OrderProductAddRequest
type OrderProductAddRequest struct {
	// Product ID
	// required: true
	// example: 1
	ProductID int64 `json:"productId"`

	// Quantity to add
	// required: true
	// example: 3
	Quantity int `json:"quantity"`
}

// NewOrderProductAddHandler returns an HTTP handler adding a product to
// an order owned by the authenticated user. Adding a product already in
// the order increments its quantity; the order total is recomputed in
// the same transaction.
// @Summary Add a product to an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param orderProductAddRequest body handlers.OrderProductAddRequest true "Product and quantity"
// @Success 201 {object} models.OrderProductDB
// @Failure 400 {object} handlers.ErrorResponse "Missing or invalid fields, or unknown product"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Order belongs to another user"
// @Failure 404 {object} handlers.ErrorResponse "Order not found"
// @Router /orders/{id}/products [post]
func NewOrderProductAddHandler(svc LineItemAdder) http.HandlerFunc {
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

		var req OrderProductAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Bad Request", "Request body is required")
			return
		}

		if req.ProductID <= 0 || req.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "Missing required fields", "ProductId and quantity are required")
			return
		}

		item, err := svc.AddProduct(r.Context(), orderID, req.ProductID, req.Quantity, user.ID)
		if err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				writeError(w, http.StatusBadRequest, "Product not found", "No product exists with that ID")
				return
			}
			writeOrderError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}
