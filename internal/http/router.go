package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go.ngs.io/sun-angles/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(sunUC *usecase.SunUseCase, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	handler := NewHandler(sunUC)

	v1 := router.Group("/v1")
	sun := v1.Group("/sun")
	sun.GET("/position", handler.GetPosition)
	sun.GET("/series", handler.GetSeries)
	sun.GET("/daylight", handler.GetDaylight)
	sun.GET("/compare", handler.GetCompare)

	router.GET("/health", handler.HealthCheck)

	return router
}
