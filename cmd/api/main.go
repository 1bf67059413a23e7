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
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/studyhive-api/api/swagger"
	"github.com/noah-isme/studyhive-api/internal/handler"
	"github.com/noah-isme/studyhive-api/internal/middleware"
	"github.com/noah-isme/studyhive-api/internal/repository"
	"github.com/noah-isme/studyhive-api/internal/router"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/cache"
	"github.com/noah-isme/studyhive-api/pkg/config"
	"github.com/noah-isme/studyhive-api/pkg/database"
	"github.com/noah-isme/studyhive-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/studyhive-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studyhive-api/pkg/middleware/requestid"
	"github.com/noah-isme/studyhive-api/pkg/payment"
)

// @title StudyHive API
// @version 1.0.0
// @description Online classroom marketplace backend
// @BasePath /
// @schemes http https
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoDB, err := database.NewMongo(ctx, cfg.Mongo, logr)
	if err != nil {
		logr.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Close(closeCtx); err != nil {
			logr.Warn("mongo close failed", zap.Error(err))
		}
	}()

	readiness := map[string]handler.Pinger{"mongo": mongoDB}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client, logr)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
			readiness["redis"] = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.StatsTTL, logr, cacheRepo != nil)

	auditSvc := service.NewAuditService(nil, logr)
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Audit)
		if err != nil {
			logr.Warn("audit journal unavailable, logging only", zap.Error(err))
		} else {
			defer db.Close() //nolint:errcheck
			auditRepo := repository.NewAuditRepository(db)
			if err := auditRepo.EnsureSchema(ctx, database.AuditSchema); err != nil {
				logr.Fatal("failed to prepare audit schema", zap.Error(err))
			}
			auditSvc = service.NewAuditService(auditRepo, logr)
			readiness["audit"] = handler.PingFunc(pingSQL(db))
		}
	}

	provider, err := payment.New(cfg.Payment)
	if err != nil {
		logr.Warn("payment provider not configured", zap.Error(err))
	}

	repairSvc := service.NewRepairService(service.RepairConfig{
		Workers:    cfg.Compensation.Workers,
		MaxRetries: cfg.Compensation.MaxRetries,
		RetryDelay: cfg.Compensation.RetryDelay,
	}, auditSvc, metricsSvc, logr)
	repairSvc.Start(context.Background())
	defer repairSvc.Stop()

	db := mongoDB.Database()
	timeout := cfg.Mongo.OpTimeout
	userRepo := repository.NewUserRepository(db, timeout)
	applicationRepo := repository.NewTeacherApplicationRepository(db, timeout)
	classRepo := repository.NewClassRepository(db, timeout)
	reviewRepo := repository.NewReviewRepository(db, timeout)
	enrollmentRepo := repository.NewEnrollmentRepository(db, timeout)
	assignmentRepo := repository.NewAssignmentRepository(db, timeout)
	submissionRepo := repository.NewSubmissionRepository(db, timeout)

	coordinator := service.NewWriteCoordinator(
		repository.NewTransactor(mongoDB.Client(), cfg.Mongo.Transactions),
		repairSvc, auditSvc, metricsSvc, logr,
	)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, cacheSvc, validate, logr)
	applicationSvc := service.NewTeacherApplicationService(applicationRepo, userRepo, coordinator, validate, logr)
	classSvc := service.NewClassService(classRepo, cacheSvc, validate, logr)
	reviewSvc := service.NewReviewService(reviewRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, classRepo, coordinator, cacheSvc, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, assignmentRepo, coordinator, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo, coordinator, cacheSvc, validate, logr)
	paymentSvc := service.NewPaymentService(provider, cfg.Payment.Currency, metricsSvc, validate, logr)
	statsSvc := service.NewStatsService(userRepo, enrollmentRepo, classRepo, cacheSvc, cfg.Cache.StatsTTL, logr)
	exportSvc := service.NewExportService(classRepo, enrollmentRepo, logr, nil, nil)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())

	gate := middleware.NewGate(authSvc, userSvc, logr)
	router.Register(r, gate, auditSvc, router.Routes(router.Handlers{
		System:       handler.NewSystemHandler(metricsSvc, readiness, logr),
		Auth:         handler.NewAuthHandler(authSvc),
		Users:        handler.NewUserHandler(userSvc),
		Applications: handler.NewTeacherApplicationHandler(applicationSvc),
		Reviews:      handler.NewReviewHandler(reviewSvc),
		Classes:      handler.NewClassHandler(classSvc),
		Assignments:  handler.NewAssignmentHandler(assignmentSvc, submissionSvc),
		Enrollments:  handler.NewEnrollmentHandler(enrollmentSvc),
		Payments:     handler.NewPaymentHandler(paymentSvc),
		Stats:        handler.NewStatsHandler(statsSvc),
		Exports:      handler.NewExportHandler(exportSvc),
	}))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "transactions", cfg.Mongo.Transactions)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func pingSQL(db *sqlx.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
