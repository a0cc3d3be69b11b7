package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/classroom-seating-api/api/swagger"
	"github.com/noah-isme/classroom-seating-api/internal/handler"
	"github.com/noah-isme/classroom-seating-api/internal/repository"
	"github.com/noah-isme/classroom-seating-api/internal/service"
	"github.com/noah-isme/classroom-seating-api/pkg/ai"
	"github.com/noah-isme/classroom-seating-api/pkg/config"
	"github.com/noah-isme/classroom-seating-api/pkg/export"
	"github.com/noah-isme/classroom-seating-api/pkg/logger"
)

// @title Classroom Seating API
// @version 1.0.0
// @description Desk layout editor, AI seating arrangements and saved classrooms
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.OpenClassroomStore(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open classroom store", "backend", cfg.Store.Backend, "error", err)
	}
	defer store.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()

	var client ai.Client
	if cfg.AI.Enabled {
		client = ai.NewGeminiClient(cfg.AI, ai.Observers{ai.NewLogObserver(logr), metrics})
	} else {
		logr.Sugar().Warnw("AI seating disabled")
	}

	seating := service.NewSeatingService(client, service.NewPromptBuilder(), metrics, logr)
	workspace := service.NewWorkspaceService(seating, logr, service.WorkspaceServiceConfig{MaxRosterNames: cfg.Roster.MaxNames})
	classrooms := service.NewClassroomService(store.Store, metrics, validate, logr, service.ClassroomServiceConfig{Backend: store.Backend})
	charts := service.NewChartService(export.NewPDFExporter(), export.NewCSVExporter(), service.ChartServiceConfig{Title: cfg.Chart.Title})

	checks := map[string]handler.ReadinessCheck{}
	if store.Ping != nil {
		checks[store.Backend] = store.Ping
	}

	r := newRouter(cfg, logr, routes{
		layout:     handler.NewLayoutHandler(workspace, validate),
		roster:     handler.NewRosterHandler(workspace, validate),
		seating:    handler.NewSeatingHandler(workspace, charts, validate),
		classrooms: handler.NewClassroomHandler(classrooms, workspace, validate),
		metrics:    handler.NewMetricsHandler(metrics, checks),
		observer:   metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", store.Backend, "ai", cfg.AI.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}
