package handlers

import (
	"context"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/models"
)

// ProductLister defines the interface that the catalog listing service
// must implement.
type ProductLister interface {
	List(ctx context.Context) ([]models.ProductDB, error)
}

// NewProductListHandler returns an HTTP handler listing all products.
// @Summary List products
// @Description Returns all catalog products, newest first.
// @Tags products
// @Produce json
// @Success 200 {array} models.ProductDB
// @Router /products [get]
func NewProductListHandler(svc ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.List(r.Context())
		if err != nil {
			writeInternalError(w, err)
			return
		}

		if products == nil {
			products = []models.ProductDB{}
		}
		writeJSON(w, http.StatusOK, products)
	}
}
