package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
)

// ProductOrdersGetter defines the interface that the product-to-orders
// lookup service must implement.
type ProductOrdersGetter interface {
	OrdersWithProduct(ctx context.Context, productID, userID int64) ([]models.OrderDB, error)
}

// NewProductOrdersHandler returns an HTTP handler listing the
// authenticated user's orders that contain a product.
// @Summary List orders containing a product
// @Description Returns the caller's orders that include the product. 404 if the product does not exist, even when authenticated.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {array} models.OrderDB
// @Failure 400 {object} handlers.ErrorResponse "Non-numeric ID"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Router /products/{id}/orders [get]
func NewProductOrdersHandler(svc ProductOrdersGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}

		productID, ok := parsePathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid product ID", "Product ID must be a number")
			return
		}

		orders, err := svc.OrdersWithProduct(r.Context(), productID, user.ID)
		if err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "Product not found", "No product exists with that ID")
				return
			}
			writeInternalError(w, err)
			return
		}

		if orders == nil {
			orders = []models.OrderDB{}
		}
		writeJSON(w, http.StatusOK, orders)
	}
}
