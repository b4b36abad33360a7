// Package httpapi wires the Gin transport to the list service, middleware
// and route handlers.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Logger (with redaction)
//  4. Recovery
//  5. Body size limit
//  6. Compression
//  7. Metrics
//  8. Rate limiter
//  9. CORS and security headers
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-lists-backend/docs"
	"github.com/tbourn/go-lists-backend/internal/config"
	"github.com/tbourn/go-lists-backend/internal/domain"
	"github.com/tbourn/go-lists-backend/internal/http/handlers"
	"github.com/tbourn/go-lists-backend/internal/http/middleware"
	"github.com/tbourn/go-lists-backend/internal/repo"
	"github.com/tbourn/go-lists-backend/internal/services"
)

// maxBodyBytes caps request bodies; names are the only payload.
const maxBodyBytes = 1 << 20

// listRepoShim adapts the repo package functions to services.ListRepo.
type listRepoShim struct{}

func (listRepoShim) ListAll(ctx context.Context, conn *gorm.DB) ([]domain.List, error) {
	return repo.ListAll(ctx, conn)
}

func (listRepoShim) GetList(ctx context.Context, conn *gorm.DB, id int64) (*domain.List, error) {
	return repo.GetList(ctx, conn, id)
}

func (listRepoShim) CreateList(ctx context.Context, conn *gorm.DB, name string) (bool, error) {
	return repo.CreateList(ctx, conn, name)
}

func (listRepoShim) ItemsForList(ctx context.Context, conn *gorm.DB, listID int64) ([]domain.ListItem, error) {
	return repo.ItemsForList(ctx, conn, listID)
}

func (listRepoShim) AddItem(ctx context.Context, conn *gorm.DB, listID int64, name string) (bool, error) {
	return repo.AddItem(ctx, conn, listID, name)
}

func (listRepoShim) RemoveItem(ctx context.Context, conn *gorm.DB, listID, itemID int64) error {
	return repo.RemoveItem(ctx, conn, listID, itemID)
}

// RegisterRoutes installs middleware, operational endpoints and the list API
// on r. HTTP metrics are registered on the Prometheus default registry,
// which /metrics serves.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.RedactOptions{MaskHeaders: []string{"X-API-Key"}}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Handler())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP()).Handler())

	r.Use(corsMiddleware(cfg.CORS)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(services.NewListService(db, listRepoShim{}))

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/lists", h.GetAllLists)
		api.POST("/lists", h.CreateList)
		api.GET("/lists/:id", h.GetList)

		api.GET("/list/:id", h.GetListItems)
		api.POST("/list/:id", h.AddItem)
		api.DELETE("/list/:id/:itemId", h.RemoveItem)
	}
}

// corsMiddleware allows any origin when no allowlist is configured and
// echoes allowlisted origins otherwise.
func corsMiddleware(cc config.CORSConfig) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(cc.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
		// ACAO even without an Origin header, for curl and health probes.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(cc.AllowedOrigins))
	for _, o := range cc.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = cc.AllowedOrigins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody wraps the request body in http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
