package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters mounted on the engine.
type Handlers struct {
	Catalogue *handlers.CatalogueHandler
	Visits    *handlers.VisitHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/customers", h.Catalogue.ListCustomers)
		api.GET("/customers/:code", h.Catalogue.GetCustomer)
		api.GET("/customers/:code/visits", h.Visits.ListForCustomer)
		api.POST("/customers/:code/visits", h.Visits.Create)

		api.GET("/visits/:id", h.Visits.Get)
		api.POST("/visits/:id/completed/toggle", h.Visits.ToggleCompleted)
		api.GET("/visits/:id/products", h.Visits.Products)
		api.PUT("/visits/:id/products/:code", h.Visits.SetQuantity)
		api.POST("/visits/:id/total/recompute", h.Visits.Recompute)

		api.GET("/products", h.Catalogue.ListProducts)
		api.GET("/packages", h.Catalogue.ListPackages)
	}

	logger.Info("router initialized")
	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
