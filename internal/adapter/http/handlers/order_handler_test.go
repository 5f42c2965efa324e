package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sevabazar/internal/adapter/http/handlers/mocks"
	"sevabazar/internal/adapter/http/middleware"
	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

var (
	testStaff    = entities.Caller{ID: "staff-1", Role: entities.RoleAdmin}
	testCustomer = entities.Caller{ID: "cust-1", Role: entities.RoleCustomer}
)

func asCaller(caller entities.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCaller(c, caller)
		c.Next()
	}
}

func postJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := `{"items":[{"service_name":"AC servicing","price":700,"quantity":1,"original_price":765.25}],"payment_method":"bKash","promo_discount":50}`

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/orders", h.CreateOrder)

		w := postJSON(t, r, http.MethodPost, "/v1/orders", validBody)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/orders", asCaller(testCustomer), h.CreateOrder)

		w := postJSON(t, r, http.MethodPost, "/v1/orders", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/orders", asCaller(testCustomer), h.CreateOrder)

		w := postJSON(t, r, http.MethodPost, "/v1/orders", `{"payment_method":"cash"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Order items are required") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/orders", asCaller(testCustomer), h.CreateOrder)

		w := postJSON(t, r, http.MethodPost, "/v1/orders", `{"items":[{"service_name":"Cleaning","price":10,"quantity":1}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Payment method is required") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/orders", asCaller(testCustomer), h.CreateOrder)

		now := time.Now().UTC()
		uc.EXPECT().CreateOrder(gomock.Any(), testCustomer, gomock.AssignableToTypeOf(usecase.CreateOrderCommand{})).DoAndReturn(
			func(_ any, _ entities.Caller, cmd usecase.CreateOrderCommand) (entities.Order, error) {
				if cmd.PaymentMethod != entities.PaymentMethodBkash {
					t.Fatalf("expected normalized bkash, got %q", cmd.PaymentMethod)
				}
				if cmd.PromoDiscount != 50 {
					t.Fatalf("expected promo 50, got %v", cmd.PromoDiscount)
				}
				return entities.Order{
					OrderNumber:   "ORD-1",
					CustomerID:    "cust-1",
					Items:         cmd.Items,
					Status:        entities.OrderStatusSubmitted,
					PaymentMethod: cmd.PaymentMethod,
					PaymentStatus: entities.PaymentStatusPending,
					Subtotal:      765.25,
					Discount:      65.25,
					PromoDiscount: 50,
					Total:         650,
					CreatedAt:     now,
					UpdatedAt:     now,
				}, nil
			},
		)

		w := postJSON(t, r, http.MethodPost, "/v1/orders", validBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["order_number"] != "ORD-1" || body["status_label"] != "Initiated" {
			t.Fatalf("unexpected body: %v", body)
		}
		if body["total"] != 650.0 {
			t.Fatalf("unexpected total: %v", body["total"])
		}
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIOrderUseCase, caller entities.Caller) *gin.Engine {
		h := NewOrderHandler(uc)
		r := gin.New()
		r.PATCH("/v1/orders/:order_number/status", asCaller(caller), h.UpdateStatus)
		return r
	}

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newRouter(uc, testStaff)

		w := postJSON(t, r, http.MethodPatch, "/v1/orders/ORD-1/status", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown status lists allowed values", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newRouter(uc, testStaff)

		uc.EXPECT().UpdateStatus(gomock.Any(), testStaff, "ORD-1", entities.OrderStatus("shipped"), "").Return(entities.Order{}, usecase.ErrInvalidStatus)

		w := postJSON(t, r, http.MethodPatch, "/v1/orders/ORD-1/status", `{"status":"shipped"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		for _, s := range entities.OrderStatuses {
			if !strings.Contains(w.Body.String(), s) {
				t.Fatalf("body %s does not list %q", w.Body.String(), s)
			}
		}
	})

	t.Run("non-staff caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newRouter(uc, testCustomer)

		uc.EXPECT().UpdateStatus(gomock.Any(), testCustomer, "ORD-1", entities.OrderStatusConfirmed, "").Return(entities.Order{}, usecase.ErrForbidden)

		w := postJSON(t, r, http.MethodPatch, "/v1/orders/ORD-1/status", `{"status":"confirmed"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newRouter(uc, testStaff)

		uc.EXPECT().UpdateStatus(gomock.Any(), testStaff, "ORD-404", entities.OrderStatusConfirmed, "").Return(entities.Order{}, usecase.ErrOrderNotFound)

		w := postJSON(t, r, http.MethodPatch, "/v1/orders/ORD-404/status", `{"status":"confirmed"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns recomputed timeline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newRouter(uc, testStaff)

		uc.EXPECT().UpdateStatus(gomock.Any(), testStaff, "ORD-1", entities.OrderStatusInProgress, "vnd-7").
			Return(entities.Order{OrderNumber: "ORD-1", Status: entities.OrderStatusInProgress, AssignedVendorID: "vnd-7"}, nil)

		w := postJSON(t, r, http.MethodPatch, "/v1/orders/ORD-1/status", `{"status":"in_progress","vendor_id":"vnd-7"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var body struct {
			StatusLabel string `json:"status_label"`
			Timeline    []struct {
				Status    string `json:"status"`
				Completed bool   `json:"completed"`
			} `json:"timeline"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.StatusLabel != "In Progress" {
			t.Fatalf("unexpected label: %q", body.StatusLabel)
		}
		if len(body.Timeline) != 7 {
			t.Fatalf("expected 7 stages, got %d", len(body.Timeline))
		}
		completed := 0
		for _, st := range body.Timeline {
			if st.Completed {
				completed++
			}
		}
		if completed != 4 {
			t.Fatalf("expected 4 completed stages, got %d", completed)
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/v1/orders/:order_number", asCaller(testCustomer), h.GetOrder)

		uc.EXPECT().GetByNumber(gomock.Any(), testCustomer, "ORD-404").Return(entities.Order{}, usecase.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/ORD-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/v1/orders/:order_number", asCaller(testCustomer), h.GetOrder)

		uc.EXPECT().GetByNumber(gomock.Any(), testCustomer, "ORD-1").
			Return(entities.Order{OrderNumber: "ORD-1", CustomerID: "cust-1", Status: entities.OrderStatusDelivered}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/ORD-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"status_label":"Delivered"`) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)

	r := gin.New()
	r.GET("/v1/orders", asCaller(testStaff), h.ListOrders)

	uc.EXPECT().ListByCustomer(gomock.Any(), testStaff, "cust-2").
		Return([]entities.Order{{OrderNumber: "ORD-1"}, {OrderNumber: "ORD-2"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders?customer_id=cust-2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(body))
	}
}
