package handlers

import (
	"context"
	"net/http"

	"github.com/DreamWeaver-code/Market/internal/middlewares"
	"github.com/DreamWeaver-code/Market/internal/models"
)

// OrderLister defines the interface that the order listing service must
// implement.
type OrderLister interface {
	List(ctx context.Context, userID int64) ([]models.OrderDB, error)
}

// NewOrderListHandler returns an HTTP handler listing the authenticated
// user's orders.
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OrderDB
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Router /orders [get]
func NewOrderListHandler(svc OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}

		orders, err := svc.List(r.Context(), user.ID)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		if orders == nil {
			orders = []models.OrderDB{}
		}
		writeJSON(w, http.StatusOK, orders)
	}
}
