package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-seating-api/internal/handler"
	"github.com/noah-isme/classroom-seating-api/internal/middleware"
	"github.com/noah-isme/classroom-seating-api/internal/service"
	"github.com/noah-isme/classroom-seating-api/pkg/config"
	"github.com/noah-isme/classroom-seating-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-seating-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-seating-api/pkg/middleware/requestid"
)

type routes struct {
	layout     *handler.LayoutHandler
	roster     *handler.RosterHandler
	seating    *handler.SeatingHandler
	classrooms *handler.ClassroomHandler
	metrics    *handler.MetricsHandler
	observer   *service.MetricsService
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(h.observer))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/palette", h.layout.Palette)

	layout := api.Group("/layout")
	layout.GET("", h.layout.Get)
	layout.PUT("", h.layout.Replace)
	layout.POST("/desks", h.layout.AddDesk)
	layout.PATCH("/desks/:id/position", h.layout.MoveDesk)
	layout.POST("/desks/:id/rotate", h.layout.RotateDesk)
	layout.POST("/desks/:id/seats/:index/toggle", h.layout.ToggleSeat)
	layout.DELETE("/desks/:id", h.layout.RemoveDesk)
	layout.GET("/matrix", h.layout.Matrix)
	layout.POST("/matrix", h.layout.ImportMatrix)

	roster := api.Group("/roster")
	roster.GET("", h.roster.Get)
	roster.PUT("", h.roster.Replace)
	roster.POST("/import", h.roster.Import)

	seating := api.Group("/seating")
	seating.GET("", h.seating.Get)
	seating.DELETE("", h.seating.Clear)
	seating.GET("/status", h.seating.Status)
	seating.POST("/generate", h.seating.Generate)
	seating.POST("/modify", h.seating.Modify)
	seating.GET("/chart.pdf", h.seating.ChartPDF)
	seating.GET("/chart.csv", h.seating.ChartCSV)

	classrooms := api.Group("/classrooms")
	classrooms.GET("", h.classrooms.List)
	classrooms.POST("", h.classrooms.Save)
	classrooms.GET("/export", h.classrooms.Export)
	classrooms.POST("/import", h.classrooms.Import)
	classrooms.GET("/:name", h.classrooms.Get)
	classrooms.POST("/:name/load", h.classrooms.Load)
	classrooms.DELETE("/:name", h.classrooms.Delete)

	return r
}
