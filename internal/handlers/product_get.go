package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
)

// ProductGetter defines the interface that the product lookup service
// must implement.
type ProductGetter interface {
	Get(ctx context.Context, id int64) (*models.ProductDB, error)
}

// NewProductGetHandler returns an HTTP handler fetching one product.
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.ProductDB
// @Failure 400 {object} handlers.ErrorResponse "Non-numeric ID"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Router /products/{id} [get]
func NewProductGetHandler(svc ProductGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := parsePathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid product ID", "Product ID must be a number")
			return
		}

		product, err := svc.Get(r.Context(), productID)
		if err != nil {
			if errors.Is(err, services.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "Product not found", "No product exists with that ID")
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}
