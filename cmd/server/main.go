package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bionutrex/internal/auth"
	"github.com/bionutrex/internal/cache"
	"github.com/bionutrex/internal/config"
	"github.com/bionutrex/internal/db"
	"github.com/bionutrex/internal/handler"
	"github.com/bionutrex/internal/logger"
	"github.com/bionutrex/internal/metrics"
	"github.com/bionutrex/internal/router"
	"github.com/bionutrex/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.New(cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	opts := db.Options{Path: cfg.DatabasePath, Logger: lg}
	if cfg.UsePostgres() {
		opts.URL = cfg.DatabaseURL
	}
	if err := db.Init(opts); err != nil {
		lg.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}

	// 仅在显式配置 SEED_ADMIN_PASSWORD 时创建管理员
	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		created, err := db.EnsureAdmin(db.DB, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName)
		if err != nil {
			lg.Error("failed to seed admin", slog.Any("error", err))
			os.Exit(1)
		}
		if created {
			lg.Info("default admin created", slog.String("email", cfg.SeedAdminEmail))
		}
	}

	publicCache := setupCache(cfg, lg)

	m := metrics.New()
	api := handler.NewAPI(db.DB, handler.Options{
		Logger:            lg,
		Tokens:            auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		Storage:           storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPath),
		Cache:             publicCache,
		CacheTTL:          cfg.CacheTTL,
		Metrics:           m,
		AllowRegistration: cfg.AllowRegistration,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, router.Options{
		Logger:      lg,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,

		AuthRatePerMinute: cfg.AuthRatePerMinute,
		AuthBurst:         cfg.AuthBurst,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server started", slog.String("addr", cfg.ListenAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown error", slog.Any("error", err))
	}
	if closer, ok := publicCache.(interface{ Close() error }); ok {
		closer.Close()
	}
	lg.Info("server stopped")
}

// setupCache 优先使用 Redis，未配置或不可用时退回进程内缓存；CACHE_TTL 为 0 时关闭缓存。
func setupCache(cfg config.AppConfig, lg *slog.Logger) cache.Cache {
	if cfg.CacheTTL <= 0 {
		return cache.NewNoop()
	}
	if !cfg.UseRedisCache() {
		lg.Info("public cache enabled", slog.String("backend", "memory"), slog.Duration("ttl", cfg.CacheTTL))
		return cache.NewMemory(cfg.CacheTTL)
	}

	rc, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		lg.Warn("invalid REDIS_URL, using memory cache", slog.Any("error", err))
		return cache.NewMemory(cfg.CacheTTL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		lg.Warn("redis unreachable, using memory cache", slog.Any("error", err))
		rc.Close()
		return cache.NewMemory(cfg.CacheTTL)
	}

	lg.Info("public cache enabled", slog.String("backend", "redis"), slog.Duration("ttl", cfg.CacheTTL))
	return rc
}
