package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	request "sevabazar/internal/adapter/http/dto/request"
	response "sevabazar/internal/adapter/http/dto/response"
	"sevabazar/internal/adapter/http/middleware"
	"sevabazar/internal/usecase"
	"sevabazar/pkg"

	"github.com/gin-gonic/gin"
)

// OrderPaymentHandler handles HTTP requests for card order payments.

type OrderPaymentHandler struct {
	usecase usecase.IOrderPaymentUseCase
}

func NewOrderPaymentHandler(uc usecase.IOrderPaymentUseCase) *OrderPaymentHandler {
	return &OrderPaymentHandler{usecase: uc}
}

// ChargePayment charges a card order through the payment gateway and records
// the outcome.
func (h *OrderPaymentHandler) ChargePayment(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errCallerMissing.HTTPStatus, errCallerMissing.ToHTTPError())
		return
	}

	orderNumber := c.Param("order_number")
	log.Printf("[payment][handler] charge start order_number=%s", orderNumber)

	var payload request.ChargeOrderPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[payment][handler] invalid payload order_number=%s err=%v", orderNumber, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.ChargeCard(c.Request.Context(), caller, orderNumber, payload.ProviderPayload)
	if err != nil {
		log.Printf("[payment][handler] charge failed order_number=%s err=%v", orderNumber, err)
		appErr := mapOrderPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] charge success order_number=%s payment_id=%s status=%s", orderNumber, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromOrderPayment(created))
}

// ListPayments returns every payment recorded against an order, newest last.
func (h *OrderPaymentHandler) ListPayments(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errCallerMissing.HTTPStatus, errCallerMissing.ToHTTPError())
		return
	}

	orderNumber := c.Param("order_number")
	payments, err := h.usecase.ListByOrderNumber(c.Request.Context(), caller, orderNumber)
	if err != nil {
		appErr := mapOrderPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out := make([]response.OrderPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, response.FromOrderPayment(p))
	}
	c.JSON(http.StatusOK, out)
}

func mapOrderPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderNumber), errors.Is(err, usecase.ErrInvalidProviderPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotCardPayment):
		return pkg.NewDomainErrorSimple("ORDER_NOT_CARD_PAYMENT", "Order is not a card payment order", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderAlreadyPaid):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PAID", "Order already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
