package handlers

import (
	"net/http"

	"github.com/SscSPs/library_circulation/cmd/docs"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary API banner
// @Description Names the service and its API version.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "library-circulation",
		"version": docs.SwaggerInfo.Version,
	})
}

// getHealth is the liveness probe; it sits outside the rate-limited group.
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
