package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/college-erp-api/api/swagger"
	"github.com/noah-isme/college-erp-api/internal/handler"
	"github.com/noah-isme/college-erp-api/internal/repository"
	"github.com/noah-isme/college-erp-api/internal/router"
	"github.com/noah-isme/college-erp-api/internal/service"
	"github.com/noah-isme/college-erp-api/pkg/cache"
	"github.com/noah-isme/college-erp-api/pkg/config"
	"github.com/noah-isme/college-erp-api/pkg/logger"
)

// @title College ERP API
// @version 1.0.0
// @description Read access to the college ERP collections plus dashboard, exports and guarded writes
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx := context.Background()
	metrics := service.NewMetricsService()

	store, closeStore, err := repository.OpenDocumentStore(ctx, cfg, metrics.ObserveStoreQuery)
	if err != nil {
		logr.Fatal("failed to open document store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logr.Warn("failed to close document store", zap.Error(err))
		}
	}()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "erp", logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	validate := validator.New()
	registry := service.NewCollectionRegistry()
	dataSvc := service.NewDataService(store, registry, cfg.Data.DefaultLimit, cfg.Data.MaxLimit, logr)
	exportSvc := service.NewExportService(dataSvc, nil, nil, logr)
	dashboardSvc := service.NewDashboardService(store, cacheSvc, metrics, service.DashboardServiceConfig{
		CacheTTL:     cfg.Dashboard.CacheTTL,
		RecentLeaves: cfg.Dashboard.RecentLeaves,
	}, logr)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	handlers := router.Handlers{
		Data:         handler.NewDataHandler(dataSvc, exportSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Students:     handler.NewStudentHandler(service.NewStudentService(store, validate, dashboardSvc, logr)),
		Faculty:      handler.NewFacultyHandler(service.NewFacultyService(store, validate, dashboardSvc, logr)),
		Courses:      handler.NewCourseHandler(service.NewCourseService(store, validate, dashboardSvc, logr)),
		Attendance:   handler.NewAttendanceHandler(service.NewAttendanceService(store, dataSvc, validate, dashboardSvc, cfg.Attendance.LowThreshold, logr)),
		LeaveRequest: handler.NewLeaveRequestHandler(service.NewLeaveRequestService(store, dataSvc, validate, dashboardSvc, logr)),
		Timetables:   handler.NewTimetableHandler(service.NewTimetableService(store, dataSvc, validate, dashboardSvc, logr)),
		Analytics:    handler.NewAnalyticsHandler(service.NewAnalyticsService(store, validate, cfg.Attendance.LowThreshold, logr)),
		Health:       handler.NewHealthHandler(store, metrics.Handler(), logr),
	}

	engine := router.Setup(router.Options{
		APIPrefix:        cfg.APIPrefix,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		EnableDashboard:  cfg.Dashboard.Enabled,
		EnableMutations:  cfg.Mutations.Enabled,
		EnableSwaggerDoc: cfg.Env != config.EnvProduction,
	}, handlers, authSvc, metrics, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
