package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ituplan/planner-api/api/swagger"
	"github.com/ituplan/planner-api/internal/handler"
	internalmiddleware "github.com/ituplan/planner-api/internal/middleware"
	"github.com/ituplan/planner-api/internal/repository"
	"github.com/ituplan/planner-api/internal/service"
	"github.com/ituplan/planner-api/pkg/cache"
	"github.com/ituplan/planner-api/pkg/config"
	"github.com/ituplan/planner-api/pkg/database"
	"github.com/ituplan/planner-api/pkg/jobs"
	"github.com/ituplan/planner-api/pkg/logger"
	corsmiddleware "github.com/ituplan/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ituplan/planner-api/pkg/middleware/requestid"
)

// @title Course Plan API
// @version 1.0.0
// @description Schedule planning service over the archived course catalog
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		redisClient = nil
	}

	termRepo := repository.NewTermRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cfg.Catalog.CacheEnabled && redisClient != nil)
	catalogSvc := service.NewCatalogService(termRepo, courseRepo, cacheSvc, metricsSvc, logr)
	plannerSvc := service.NewPlannerService(termRepo, courseRepo, metricsSvc, cfg.Planner, logr)
	exportSvc := service.NewExportService(plannerSvc, termRepo, cfg.Export.Enabled, logr)

	warmQueue := jobs.NewQueue("catalog-warm", func(ctx context.Context, _ jobs.Job) error {
		return catalogSvc.WarmCaches(ctx)
	}, jobs.QueueConfig{Workers: cfg.Catalog.WarmWorkers, Logger: logr})
	warmQueue.Start(context.Background())
	defer warmQueue.Stop()
	if cfg.Catalog.WarmOnStart {
		if err := warmQueue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "warm-catalog"}); err != nil {
			logr.Sugar().Warnw("failed to enqueue catalog warm job", "error", err)
		}
	}

	termHandler := handler.NewTermHandler(catalogSvc)
	courseHandler := handler.NewCourseHandler(catalogSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/terms", termHandler.List)
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/sections", courseHandler.Sections)
		api.GET("/levels", courseHandler.Levels)
		api.GET("/subjects", courseHandler.Subjects)
		api.POST("/plans/generate", plannerHandler.Generate)
		api.POST("/plans/conflicts", plannerHandler.Conflicts)
		api.GET("/plans/export", exportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
