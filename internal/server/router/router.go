package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(reportHandler *handlers.ReportHandler, testerHandler *handlers.TesterHandler, seederHandler *handlers.SeederHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	reports := api.Group("/concrete-report")
	reports.GET("", reportHandler.GetReport)
	reports.GET("/csv", reportHandler.GetCSV)
	reports.GET("/xlsx", reportHandler.GetXLSX)

	testers := api.Group("/tester-report")
	testers.GET("/queue", testerHandler.GetQueue)
	testers.GET("/queue/:id", testerHandler.GetQueueItem)
	testers.GET("/upcoming", testerHandler.GetUpcoming)
	testers.GET("/untested-placements", testerHandler.GetUntestedPlacements)
	testers.GET("/test-day/:id", testerHandler.GetTestDayDetails)
	testers.POST("/test-day/:id/results", testerHandler.SaveTestDayResults)

	api.POST("/seed", seederHandler.Seed)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
