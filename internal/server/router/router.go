package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/server/handlers"
)

// RequestIDHeader carries the request id in and out of the service.
const RequestIDHeader = "X-Request-ID"

// Pinger reports whether the entity store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the HTTP adapters mounted on the engine.
type Handlers struct {
	Catalog    *handlers.CatalogHandler
	Validation *handlers.ValidationHandler
	Reports    *handlers.ReportHandler
}

// Options carries the optional parts of the engine.
type Options struct {
	// Store is pinged by /healthz when set.
	Store Pinger
	// Gatherer is exposed on /metrics when set.
	Gatherer prometheus.Gatherer
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", healthHandler(opts.Store))
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	if c := h.Catalog; c != nil {
		r.POST("/locations", c.CreateLocation)
		r.GET("/locations", c.ListLocations)
		r.POST("/products", c.CreateProduct)
		r.GET("/products", c.ListProducts)
		r.POST("/storage-units", c.CreateStorageUnit)
		r.GET("/storage-units", c.ListStorageUnits)
		r.POST("/routes", c.CreateRoute)
		r.GET("/routes", c.ListRoutes)
		r.POST("/demands", c.CreateDemand)
		r.GET("/demands", c.ListDemands)
		r.GET("/network/summary", c.Summary)
	}

	if v := h.Validation; v != nil {
		r.POST("/temps/validate", v.ValidateTemperatures)
		r.POST("/network/validate", v.ValidateNetwork)
	}

	if rep := h.Reports; rep != nil {
		r.POST("/reports", rep.Create)
		r.GET("/reports", rep.List)
	}

	logger.Info("router initialized")
	return r
}

func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString(RequestIDHeader)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
