package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DreamWeaver-code/Market/internal/handlers"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/DreamWeaver-code/Market/internal/services"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &models.AuthUser{ID: 42, Username: "alice"}

func TestOrderCreateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		body        string
		user        *models.AuthUser
		setup       func(svc *handlers.MockOrderCreator)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "date only",
			body: `{"date":"2024-01-01"}`,
			user: testUser,
			setup: func(svc *handlers.MockOrderCreator) {
				svc.EXPECT().
					Create(gomock.Any(), int64(42), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
					Return(&models.OrderDB{ID: 1, UserID: 42, Status: models.OrderStatusCreated}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "rfc3339 date",
			body: `{"date":"2024-01-01T09:30:00Z"}`,
			user: testUser,
			setup: func(svc *handlers.MockOrderCreator) {
				svc.EXPECT().
					Create(gomock.Any(), int64(42), time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)).
					Return(&models.OrderDB{ID: 1, UserID: 42}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "no identity",
			body:       `{"date":"2024-01-01"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "missing date",
			body:        `{}`,
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Date is required",
		},
		{
			name:        "unparseable date",
			body:        `{"date":"yesterday"}`,
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Date must be YYYY-MM-DD or RFC 3339",
		},
		{
			name: "service error",
			body: `{"date":"2024-01-01"}`,
			user: testUser,
			setup: func(svc *handlers.MockOrderCreator) {
				svc.EXPECT().
					Create(gomock.Any(), int64(42), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockOrderCreator(ctrl)
			if tt.setup != nil {
				tt.setup(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			handlers.NewOrderCreateHandler(svc)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
			}
		})
	}
}

func TestOrderListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("lists the user's orders", func(t *testing.T) {
		svc := handlers.NewMockOrderLister(ctrl)
		svc.EXPECT().List(gomock.Any(), int64(42)).
			Return([]models.OrderDB{{ID: 2, UserID: 42}, {ID: 1, UserID: 42}}, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/orders", nil), testUser)
		rec := httptest.NewRecorder()

		handlers.NewOrderListHandler(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var orders []models.OrderDB
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&orders))
		assert.Len(t, orders, 2)
	})

	t.Run("no orders is an empty array", func(t *testing.T) {
		svc := handlers.NewMockOrderLister(ctrl)
		svc.EXPECT().List(gomock.Any(), int64(42)).Return(nil, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/orders", nil), testUser)
		rec := httptest.NewRecorder()

		handlers.NewOrderListHandler(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("no identity", func(t *testing.T) {
		svc := handlers.NewMockOrderLister(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		rec := httptest.NewRecorder()

		handlers.NewOrderListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOrderGetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		pathID      string
		user        *models.AuthUser
		setup       func(svc *handlers.MockOrderGetter)
		wantStatus  int
		wantMessage string
	}{
		{
			name:   "owned order",
			pathID: "1",
			user:   testUser,
			setup: func(svc *handlers.MockOrderGetter) {
				svc.EXPECT().Get(gomock.Any(), int64(1), int64(42)).
					Return(&models.OrderDB{ID: 1, UserID: 42, TotalAmount: 30.00}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no identity",
			pathID:     "1",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "non-numeric id",
			pathID:      "abc",
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Order ID must be a number",
		},
		{
			name:   "missing order is 404",
			pathID: "99",
			user:   testUser,
			setup: func(svc *handlers.MockOrderGetter) {
				svc.EXPECT().Get(gomock.Any(), int64(99), int64(42)).
					Return(nil, services.ErrOrderNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "No order exists with that ID",
		},
		{
			name:   "foreign order is 403",
			pathID: "7",
			user:   testUser,
			setup: func(svc *handlers.MockOrderGetter) {
				svc.EXPECT().Get(gomock.Any(), int64(7), int64(42)).
					Return(nil, services.ErrOrderForbidden)
			},
			wantStatus:  http.StatusForbidden,
			wantMessage: "You do not have permission to access this order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockOrderGetter(ctrl)
			if tt.setup != nil {
				tt.setup(svc)
			}

			req := httptest.NewRequest(http.MethodGet, "/orders/"+tt.pathID, nil)
			req = withPathParam(req, "id", tt.pathID)
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			handlers.NewOrderGetHandler(svc)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
			}
		})
	}
}

func TestOrderProductAddHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		pathID      string
		body        string
		user        *models.AuthUser
		setup       func(svc *handlers.MockLineItemAdder)
		wantStatus  int
		wantMessage string
	}{
		{
			name:   "adds a line item",
			pathID: "1",
			body:   `{"productId":5,"quantity":3}`,
			user:   testUser,
			setup: func(svc *handlers.MockLineItemAdder) {
				svc.EXPECT().AddProduct(gomock.Any(), int64(1), int64(5), 3, int64(42)).
					Return(&models.OrderProductDB{ID: 9, OrderID: 1, ProductID: 5, Quantity: 3, UnitPrice: 10.00}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "no identity",
			pathID:     "1",
			body:       `{"productId":5,"quantity":3}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "non-numeric order id",
			pathID:      "abc",
			body:        `{"productId":5,"quantity":3}`,
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Order ID must be a number",
		},
		{
			name:        "missing product id",
			pathID:      "1",
			body:        `{"quantity":3}`,
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "ProductId and quantity are required",
		},
		{
			name:        "zero quantity",
			pathID:      "1",
			body:        `{"productId":5,"quantity":0}`,
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "ProductId and quantity are required",
		},
		{
			name:        "negative quantity",
			pathID:      "1",
			body:        `{"productId":5,"quantity":-2}`,
			user:        testUser,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "ProductId and quantity are required",
		},
		{
			name:   "unknown product is 400",
			pathID: "1",
			body:   `{"productId":99,"quantity":3}`,
			user:   testUser,
			setup: func(svc *handlers.MockLineItemAdder) {
				svc.EXPECT().AddProduct(gomock.Any(), int64(1), int64(99), 3, int64(42)).
					Return(nil, services.ErrProductNotFound)
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "No product exists with that ID",
		},
		{
			name:   "missing order is 404",
			pathID: "99",
			body:   `{"productId":5,"quantity":3}`,
			user:   testUser,
			setup: func(svc *handlers.MockLineItemAdder) {
				svc.EXPECT().AddProduct(gomock.Any(), int64(99), int64(5), 3, int64(42)).
					Return(nil, services.ErrOrderNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "No order exists with that ID",
		},
		{
			name:   "foreign order is 403",
			pathID: "7",
			body:   `{"productId":5,"quantity":3}`,
			user:   testUser,
			setup: func(svc *handlers.MockLineItemAdder) {
				svc.EXPECT().AddProduct(gomock.Any(), int64(7), int64(5), 3, int64(42)).
					Return(nil, services.ErrOrderForbidden)
			},
			wantStatus:  http.StatusForbidden,
			wantMessage: "You do not have permission to access this order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockLineItemAdder(ctrl)
			if tt.setup != nil {
				tt.setup(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/orders/"+tt.pathID+"/products", strings.NewReader(tt.body))
			req = withPathParam(req, "id", tt.pathID)
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			handlers.NewOrderProductAddHandler(svc)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
			}
		})
	}
}

func TestOrderProductListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("lists line items with product details", func(t *testing.T) {
		svc := handlers.NewMockLineItemLister(ctrl)
		svc.EXPECT().ListProducts(gomock.Any(), int64(1), int64(42)).
			Return([]models.OrderProductDetailDB{
				{OrderProductDB: models.OrderProductDB{ID: 9, OrderID: 1, ProductID: 5, Quantity: 3, UnitPrice: 10.00}, Name: "Yoga Mat"},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/orders/1/products", nil)
		req = withPathParam(req, "id", "1")
		req = withUser(req, testUser)
		rec := httptest.NewRecorder()

		handlers.NewOrderProductListHandler(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var items []models.OrderProductDetailDB
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "Yoga Mat", items[0].Name)
	})

	t.Run("empty order is an empty array", func(t *testing.T) {
		svc := handlers.NewMockLineItemLister(ctrl)
		svc.EXPECT().ListProducts(gomock.Any(), int64(1), int64(42)).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/orders/1/products", nil)
		req = withPathParam(req, "id", "1")
		req = withUser(req, testUser)
		rec := httptest.NewRecorder()

		handlers.NewOrderProductListHandler(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("foreign order is 403", func(t *testing.T) {
		svc := handlers.NewMockLineItemLister(ctrl)
		svc.EXPECT().ListProducts(gomock.Any(), int64(7), int64(42)).
			Return(nil, services.ErrOrderForbidden)

		req := httptest.NewRequest(http.MethodGet, "/orders/7/products", nil)
		req = withPathParam(req, "id", "7")
		req = withUser(req, testUser)
		rec := httptest.NewRecorder()

		handlers.NewOrderProductListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
