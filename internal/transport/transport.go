package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Bhor28/bloomai-backend/config"
)

func InitRoutes(handler *FlowerHandler, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Welcome to the BloomAI Prediction API!"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      "bloomai-backend",
			"model_loaded": handler.classify.Ready(),
		})
	})

	router.POST("/predict", handler.Predict)

	if cfg.Detector.Enabled {
		router.POST("/detect-disease", handler.DetectDisease)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		origins[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origins[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
