package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "sevabazar/internal/adapter/http/dto/request"
	response "sevabazar/internal/adapter/http/dto/response"
	"sevabazar/internal/adapter/http/middleware"
	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase"
	"sevabazar/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errCallerMissing       = pkg.NewDomainErrorSimple("AUTH_REQUIRED", "Authentication required", http.StatusUnauthorized)
)

// OrderHandler handles HTTP requests for marketplace orders.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder turns a checkout cart snapshot into a persisted order.
//
// Resubmitting a payload with a known order number returns the stored order
// instead of failing, so clients can safely retry.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errCallerMissing.HTTPStatus, errCallerMissing.ToHTTPError())
		return
	}

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		appErr := pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	cmd := usecase.CreateOrderCommand{
		OrderNumber:   payload.OrderNumber,
		CustomerID:    payload.CustomerID,
		Items:         payload.ToItems(),
		PaymentMethod: payload.Method(),
		PromoCode:     payload.PromoCode,
		PromoDiscount: payload.PromoDiscount,
		ScheduledDate: payload.ScheduledDate,
		ScheduledTime: payload.ScheduledTime,
		Address:       payload.Address,
		Notes:         payload.Notes,
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), caller, cmd)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// UpdateStatus applies a staff lifecycle transition, optionally assigning a
// vendor in the same call.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errCallerMissing.HTTPStatus, errCallerMissing.ToHTTPError())
		return
	}

	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateStatus(c.Request.Context(), caller, c.Param("order_number"), payload.ResolveStatus(), payload.VendorID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// GetOrder returns one order with its recomputed timeline.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errCallerMissing.HTTPStatus, errCallerMissing.ToHTTPError())
		return
	}

	order, err := h.usecase.GetByNumber(c.Request.Context(), caller, c.Param("order_number"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListOrders returns a customer's orders. Staff may pass any customer_id;
// customers get their own orders regardless.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errCallerMissing.HTTPStatus, errCallerMissing.ToHTTPError())
		return
	}

	orders, err := h.usecase.ListByCustomer(c.Request.Context(), caller, c.Query("customer_id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNoItems):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Order items are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Payment method is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid order status, allowed values: "+strings.Join(entities.OrderStatuses, ", "), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidItem), errors.Is(err, usecase.ErrInvalidPromoDiscount),
		errors.Is(err, usecase.ErrInvalidOrderNumber), errors.Is(err, usecase.ErrInvalidCustomerID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
