package handler

import (
	"log/slog"
	"time"

	"github.com/bionutrex/internal/auth"
	"github.com/bionutrex/internal/cache"
	"github.com/bionutrex/internal/metrics"
	"github.com/bionutrex/internal/service"
	"github.com/bionutrex/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	log           *slog.Logger
	auth          *service.AuthService
	sliders       *service.SliderService
	sections      *service.HomeSectionService
	posts         *service.BlogPostService
	storage       *storage.LocalStorage
	cache         cache.Cache
	cacheTTL      time.Duration
	metrics       *metrics.Metrics
	allowRegister bool
}

// Options 描述构建 API 所需的外部依赖，未设置的字段使用安全默认值。
type Options struct {
	Logger            *slog.Logger
	Tokens            *auth.Manager
	Storage           *storage.LocalStorage
	Cache             cache.Cache
	CacheTTL          time.Duration
	Metrics           *metrics.Metrics
	AllowRegistration bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = auth.NewManager("bionutrex-dev-secret", 7*24*time.Hour)
	}
	store := opts.Storage
	if store == nil {
		store = storage.NewLocalStorage("uploads", "/uploads")
	}
	publicCache := opts.Cache
	if publicCache == nil {
		publicCache = cache.NewNoop()
	}

	return &API{
		db:            gdb,
		log:           log,
		auth:          service.NewAuthService(gdb, tokens),
		sliders:       service.NewSliderService(gdb),
		sections:      service.NewHomeSectionService(gdb, log),
		posts:         service.NewBlogPostService(gdb),
		storage:       store,
		cache:         publicCache,
		cacheTTL:      opts.CacheTTL,
		metrics:       opts.Metrics,
		allowRegister: opts.AllowRegistration,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Storage exposes the upload storage used for static serving.
func (a *API) Storage() *storage.LocalStorage {
	return a.storage
}
