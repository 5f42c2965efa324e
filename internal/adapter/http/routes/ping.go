package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse is the health check payload.
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// ping godoc
// @Summary      Health check
// @Description  Returns pong when the service is up
// @Tags         ping
// @Produce      json
// @Success      200  {object}  PingResponse
// @Router       /ping [get]
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", ping)
}
