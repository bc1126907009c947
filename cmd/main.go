package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/zy091/iwishneed-sub001/config"
	_ "github.com/zy091/iwishneed-sub001/docs"
	"github.com/zy091/iwishneed-sub001/internal/handler"
	"github.com/zy091/iwishneed-sub001/internal/logger"
	"github.com/zy091/iwishneed-sub001/internal/middleware"
	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/repository"
	"github.com/zy091/iwishneed-sub001/internal/security"
	"github.com/zy091/iwishneed-sub001/internal/service"
)

// @title Comment gateway
// @version 1.0
// @description Шлюз комментариев и вложений с проверкой токена основного провайдера

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("GATEWAY_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	zlog, err := logger.Setup(cfg.Log.Level, cfg.Log.Development, cfg.Log.File)
	if err != nil {
		log.Fatalf("ошибка инициализации логгера: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		zlog.Fatal("не удалось подключиться к БД", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zlog.Warn("ошибка при закрытии БД", zap.Error(err))
		}
	}()

	healthDeps := map[string]handler.Pinger{"postgres": db}

	var redisClient *config.RedisClient
	if cfg.IdentityCache.Backend == config.IdentityCacheRedis {
		redisClient, err = config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			zlog.Fatal("ошибка подключения к Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				zlog.Warn("ошибка при закрытии Redis", zap.Error(err))
			}
		}()
		healthDeps["redis"] = redisClient
	}

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		zlog.Fatal("ошибка создания S3 сервиса", zap.Error(err))
	}
	healthDeps["s3"] = s3Service

	verifier := setupVerifier(cfg, redisClient)

	commentService := service.NewCommentService(
		db,
		repository.NewCommentRepository(),
		repository.NewAttachmentRepository(),
		cfg.Attachments.WriteAttempts,
	)
	attachmentService := service.NewAttachmentService(s3Service, cfg.TTL.UploadURLDuration(), cfg.TTL.SignedURLDuration())

	basePolicy := security.NewOriginPolicy(cfg.CORS.AllowedOrigins)
	uploadPolicy, err := basePolicy.WithUploadRules(cfg.CORS.UploadPatterns, cfg.CORS.BrandSubstring)
	if err != nil {
		zlog.Fatal("некорректные правила источников", zap.Error(err))
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		zlog.Warn("ALLOWED_ORIGINS не задан, разрешены любые источники")
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.Metrics())

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/health/*", handler.NewHealthHandler(prometheus.DefaultRegisterer, healthDeps))

	handler.SetupGatewayRoutes(
		router,
		handler.NewCommentHandler(commentService),
		handler.NewAttachmentHandler(attachmentService),
		verifier,
		basePolicy,
		uploadPolicy,
	)

	runServer(ctx, srv, zlog)
}

func setupVerifier(cfg *config.AppConfig, redisClient *config.RedisClient) ports.IdentityVerifier {
	verifier := security.NewMainAuthVerifier(&cfg.MainAuth, nil)
	ttl := cfg.TTL.IdentityCacheDuration()

	switch cfg.IdentityCache.Backend {
	case config.IdentityCacheMemory:
		cache := repository.NewIdentityMemoryCache(cfg.IdentityCache.Size, ttl)
		return security.NewCachingVerifier(verifier, cache, ttl)
	case config.IdentityCacheRedis:
		cache := repository.NewIdentityCacheRepository(redisClient)
		return security.NewCachingVerifier(verifier, cache, ttl)
	default:
		return verifier
	}
}

func runServer(ctx context.Context, server *http.Server, zlog *zap.Logger) {
	serverErrors := make(chan error, 1)
	go func() {
		zlog.Info("сервер запущен", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("ошибка работы сервера", zap.Error(err))
		}
	case sig := <-signalChannel:
		zlog.Info("получен сигнал остановки сервера", zap.String("signal", sig.String()))
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		zlog.Error("ошибка при остановке сервера", zap.Error(err))
	} else {
		zlog.Info("сервер успешно остановлен")
	}
}
