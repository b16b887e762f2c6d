package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"itemtrail/internal/audit"
	"itemtrail/internal/config"
	"itemtrail/internal/http/handlers"
	"itemtrail/internal/items"
	"itemtrail/internal/validation"
)

// NewRouter wires the middleware chain and routes. The validation gate sits
// before route dispatch so handlers only ever see sanitized payloads.
func NewRouter(db *gorm.DB, provider *config.Provider, auditor *audit.Service) *gin.Engine {
	cfg := provider.Current()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(RequestID())
	if cfg.ForceHTTPS {
		r.Use(ForceHTTPS())
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization", "X-User-ID", "X-Request-ID"},
		}))
	}
	r.Use(Counters())
	r.Use(validation.Gate(provider))

	repo := items.NewRepository(db, log.Default())

	r.GET("/health", handlers.Health())
	r.GET("/items", handlers.ListItems(repo))
	r.POST("/items", handlers.CreateItem(repo, provider, auditor))
	r.GET("/audit", handlers.ListAudit(db, provider))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
