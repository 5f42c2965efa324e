package routes

import (
	"log"
	"os"
	"strconv"

	_ "sevabazar/docs" // This will be auto-generated
	"sevabazar/internal/adapter/http/handlers"
	"sevabazar/internal/adapter/http/middleware"
	repository2 "sevabazar/internal/adapter/persistence/repository"
	"sevabazar/internal/infrastructure/database"
	"sevabazar/internal/infrastructure/payments"
	"sevabazar/internal/infrastructure/session"
	"sevabazar/internal/usecase"
	"sevabazar/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	orderPaymentRepo := repository2.NewOrderPaymentDynamoRepository(ddb)

	orderUseCase := usecase.NewOrderUseCase(orderRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	orderPaymentUseCase := usecase.NewOrderPaymentUseCase(orderPaymentRepo, orderRepo, paymentGateway)

	orderHandler := handlers.NewOrderHandler(orderUseCase)
	orderPaymentHandler := handlers.NewOrderPaymentHandler(orderPaymentUseCase)

	sessions := session.NewRedisStore(envOrDefault("REDIS_ADDR", "localhost:6379"))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.Authenticate(sessions))
	addOrderRoutes(authed, orderHandler, orderPaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
