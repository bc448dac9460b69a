package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/salesops-hq/backend/internal/config"
	"github.com/salesops-hq/backend/internal/db"
	"github.com/salesops-hq/backend/internal/http/handlers"
	"github.com/salesops-hq/backend/internal/http/middleware"
	"github.com/salesops-hq/backend/internal/identity"
	"github.com/salesops-hq/backend/internal/records"
	"github.com/salesops-hq/backend/internal/service"

	_ "github.com/salesops-hq/backend/docs"
)

func Router(cfg config.Config, store *db.Store, source records.Source, provider identity.Provider, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Records:   source,
		Identity:  provider,
		Composer:  &service.Composer{},
		Validator: validator.New(),
		Logger:    logger,
		AdminKey:  cfg.AdminKey,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/activities", h.ActivitiesList)
		api.GET("/metrics/dashboard", h.MetricsDashboard)
		api.GET("/metrics/funnel", h.MetricsFunnel)
		api.GET("/metrics/call-productivity", h.MetricsCallProductivity)
		api.GET("/metrics/time-motion", h.MetricsTimeMotion)
		api.GET("/metrics/presets", h.MetricsPresets)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/import", h.Import)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
