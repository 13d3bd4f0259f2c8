// Package main Novel Nest API 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"novel-nest-api/internal/application/auth"
	"novel-nest-api/internal/application/catalog"
	"novel-nest-api/internal/config"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/infrastructure/persistence/memory"
	"novel-nest-api/internal/infrastructure/persistence/postgres"
	"novel-nest-api/internal/infrastructure/persistence/redis"
	"novel-nest-api/internal/interfaces/http/handler"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/internal/interfaces/http/router"
	"novel-nest-api/pkg/logger"
	"novel-nest-api/pkg/tracer"
	"novel-nest-api/pkg/utils"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// app 组装完成的应用
type app struct {
	router  *router.Router
	cleanup func()
}

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting novel-nest-api",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
		"driver", cfg.Database.Driver,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 组装应用
	application, err := buildApp(cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize app", err)
	}
	defer application.cleanup()

	// 创建 HTTP 服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      application.router.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动服务器
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

// buildApp 按配置选择存储实现并手工装配依赖
func buildApp(cfg *config.Config) (*app, error) {
	var (
		userRepo     repository.UserRepository
		novelRepo    repository.NovelRepository
		episodeRepo  repository.EpisodeRepository
		reviewRepo   repository.ReviewRepository
		commentRepo  repository.CommentRepository
		tx           repository.Transactor
		sessionStore auth.SessionStore
		feedCache    catalog.FeedCache
		limiter      middleware.RateLimiter
		pgClient     *postgres.Client
		redisClient  *redis.Client
		cleanups     []func()
	)

	switch cfg.Database.Driver {
	case "memory":
		// 内存模式：固定演示数据，无外部依赖
		store := memory.NewStoreWithFixtures()
		userRepo = memory.NewUserRepository(store)
		novelRepo = memory.NewNovelRepository(store)
		episodeRepo = memory.NewEpisodeRepository(store)
		reviewRepo = memory.NewReviewRepository(store)
		commentRepo = memory.NewCommentRepository(store)
		tx = memory.NewTransactor()
		sessionStore = memory.NewSessionStore()

	default:
		pg, err := postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect postgres: %w", err)
		}
		cleanups = append(cleanups, func() { _ = pg.Close() })

		rdb, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		cleanups = append(cleanups, func() { _ = rdb.Close() })

		pgClient = pg
		redisClient = rdb
		userRepo = postgres.NewUserRepository(pg)
		novelRepo = postgres.NewNovelRepository(pg)
		episodeRepo = postgres.NewEpisodeRepository(pg)
		reviewRepo = postgres.NewReviewRepository(pg)
		commentRepo = postgres.NewCommentRepository(pg)
		tx = postgres.NewTxManager(pg)
		sessionStore = redis.NewSessionStore(rdb)
		feedCache = redis.NewCache(rdb)
		limiter = redis.NewRateLimiter(rdb)
	}

	jwtManager := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
	authService := auth.NewService(userRepo, sessionStore, jwtManager,
		cfg.Security.JWT.Expiration, cfg.Security.JWT.RefreshExpiration)

	catalogService := catalog.NewService(novelRepo, feedCache, catalog.Keys{
		Recommended: redis.KeyRecommendedFeed,
		Tag:         redis.TagFeedKey,
	}, cfg.Cache.FeedTTL, cfg.Catalog.FeedSize)

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(pgClient, redisClient),
		Auth:       handler.NewAuthHandler(authService),
		Navigation: handler.NewNavigationHandler(authService),
		User:       handler.NewUserHandler(userRepo, novelRepo),
		Novel:      handler.NewNovelHandler(catalogService, novelRepo, episodeRepo, cfg.Catalog.FantasyTag),
		Episode:    handler.NewEpisodeHandler(novelRepo, episodeRepo, userRepo),
		Review:     handler.NewReviewHandler(novelRepo, reviewRepo, tx),
		Comment:    handler.NewCommentHandler(novelRepo, episodeRepo, commentRepo),
		Writer:     handler.NewWriterHandler(catalogService, novelRepo, episodeRepo),
	}

	r := router.New(cfg, handlers, limiter)

	return &app{
		router: r,
		cleanup: func() {
			for i := len(cleanups) - 1; i >= 0; i-- {
				cleanups[i]()
			}
		},
	}, nil
}
