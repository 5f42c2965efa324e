package routes

import (
	"sevabazar/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, paymentHandler *handlers.OrderPaymentHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:order_number", orderHandler.GetOrder)
		orders.PATCH("/:order_number/status", orderHandler.UpdateStatus)

		orders.POST("/:order_number/payments", paymentHandler.ChargePayment)
		orders.GET("/:order_number/payments", paymentHandler.ListPayments)
	}
}
