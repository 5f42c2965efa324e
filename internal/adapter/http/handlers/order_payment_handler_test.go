package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sevabazar/internal/adapter/http/handlers/mocks"
	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestOrderPaymentHandler_ChargePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIOrderPaymentUseCase, caller entities.Caller) *gin.Engine {
		h := NewOrderPaymentHandler(uc)
		r := gin.New()
		r.POST("/v1/orders/:order_number/payments", asCaller(caller), h.ChargePayment)
		return r
	}

	t.Run("empty body is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderPaymentUseCase(ctrl)
		r := newRouter(uc, testCustomer)

		uc.EXPECT().ChargeCard(gomock.Any(), testCustomer, "ORD-1", gomock.Nil()).
			Return(entities.OrderPayment{ID: "pay-1", OrderNumber: "ORD-1", Status: entities.PaymentStatusPaid, Date: time.Now().UTC()}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ORD-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"payment_id":"pay-1"`) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderPaymentUseCase(ctrl)
		r := newRouter(uc, testCustomer)

		uc.EXPECT().ChargeCard(gomock.Any(), testCustomer, "ORD-404", gomock.Any()).
			Return(entities.OrderPayment{}, usecase.ErrOrderNotFound)

		w := postJSON(t, r, http.MethodPost, "/v1/orders/ORD-404/payments", `{"provider_payload":{"token":"tok"}}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("non-card order conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderPaymentUseCase(ctrl)
		r := newRouter(uc, testCustomer)

		uc.EXPECT().ChargeCard(gomock.Any(), testCustomer, "ORD-1", gomock.Any()).
			Return(entities.OrderPayment{}, usecase.ErrOrderNotCardPayment)

		w := postJSON(t, r, http.MethodPost, "/v1/orders/ORD-1/payments", `{"provider_payload":{}}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "ORDER_NOT_CARD_PAYMENT") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("already paid conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderPaymentUseCase(ctrl)
		r := newRouter(uc, testCustomer)

		uc.EXPECT().ChargeCard(gomock.Any(), testCustomer, "ORD-1", gomock.Any()).
			Return(entities.OrderPayment{}, usecase.ErrOrderAlreadyPaid)

		w := postJSON(t, r, http.MethodPost, "/v1/orders/ORD-1/payments", `{"provider_payload":{}}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("provider unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderPaymentUseCase(ctrl)
		r := newRouter(uc, testCustomer)

		uc.EXPECT().ChargeCard(gomock.Any(), testCustomer, "ORD-1", gomock.Any()).
			Return(entities.OrderPayment{}, usecase.ErrPaymentGatewayUnauthorized)

		w := postJSON(t, r, http.MethodPost, "/v1/orders/ORD-1/payments", `{"provider_payload":{}}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestOrderPaymentHandler_ListPayments(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIOrderPaymentUseCase(ctrl)
	h := NewOrderPaymentHandler(uc)

	r := gin.New()
	r.GET("/v1/orders/:order_number/payments", asCaller(testCustomer), h.ListPayments)

	uc.EXPECT().ListByOrderNumber(gomock.Any(), testCustomer, "ORD-1").
		Return([]entities.OrderPayment{
			{ID: "pay-1", OrderNumber: "ORD-1", Status: entities.PaymentStatusFailed},
			{ID: "pay-2", OrderNumber: "ORD-1", Status: entities.PaymentStatusPaid},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/ORD-1/payments", nil)
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
		t.Fatalf("expected 2 payments, got %d", len(body))
	}
}
