package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), withRequestLogging(), withCORS())

	r.GET("/health", handler.health)

	api := r.Group("/api")
	{
		spirit := api.Group("/spirit")
		spirit.GET("/records", handler.spiritRecords)
		spirit.GET("/markers", handler.spiritMarkers)
		spirit.PUT("/records/:date", handler.saveSpirit)

		body := api.Group("/body")
		body.GET("/records", handler.bodyRecords)
		body.GET("/markers", handler.bodyMarkers)
		body.PUT("/records/:date", handler.saveBody)

		mind := api.Group("/mind")
		mind.GET("/streak", handler.streak)
		mind.POST("/streak/reset", handler.resetStreak)
		mind.GET("/screentime", handler.screenTime)
		mind.POST("/screentime/sync", handler.syncScreenTime)

		wealth := api.Group("/wealth")
		wealth.GET("/assets", handler.assets)
		wealth.PUT("/assets", handler.saveAsset)
		wealth.DELETE("/assets/:id", handler.deleteAsset)
		wealth.GET("/summary", handler.wealthSummary)

		api.GET("/settings", handler.settings)
		api.PUT("/settings", handler.updateSettings)
		api.GET("/dashboard", handler.dashboard)
	}

	return r
}

func withRequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s) from %s", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start).Truncate(time.Millisecond), c.ClientIP())
	}
}

func withCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
