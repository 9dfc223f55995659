package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret = "bionutrex-dev-secret"
	// DevSeedAdminPassword is the seed password used outside production when none is configured.
	DevSeedAdminPassword = "admin123"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr string `env:"LISTEN_ADDR"`
	Port       string `env:"PORT" envDefault:"3001"`
	Env        string `env:"APP_ENV" envDefault:"local"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	GinMode    string `env:"GIN_MODE" envDefault:"release"`

	DatabaseURL  string `env:"DATABASE_URL"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/bionutrex.db"`

	JWTSecret         string        `env:"JWT_SECRET" envDefault:"bionutrex-dev-secret"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"168h"`
	AllowRegistration bool          `env:"AUTH_ALLOW_REGISTER" envDefault:"true"`
	AuthRatePerMinute float64       `env:"AUTH_RATE_LIMIT" envDefault:"20"`
	AuthBurst         int           `env:"AUTH_RATE_BURST" envDefault:"5"`

	UploadDir     string   `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadURLPath string   `env:"UPLOAD_URL_PATH" envDefault:"/uploads"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	StaticDir     string   `env:"STATIC_DIR"`

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@bionutrex.com"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	SeedAdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Admin BioNutrex"`
}

// Load 读取可选的 .env 文件后解析环境变量，并补齐派生字段。
func Load() (AppConfig, error) {
	// .env 不存在时直接使用进程环境
	_ = godotenv.Load()

	return Parse(env.Options{})
}

// Parse 按给定选项解析配置，测试中可通过 Environment 注入变量。
func Parse(opts env.Options) (AppConfig, error) {
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "3001"
	}
	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	cfg.UploadURLPath = "/" + strings.Trim(strings.TrimSpace(cfg.UploadURLPath), "/")
	if cfg.UploadURLPath == "/" {
		cfg.UploadURLPath = "/uploads"
	}

	origins := make([]string, 0, len(cfg.CORSOrigins))
	for _, origin := range cfg.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.CORSOrigins = origins

	if cfg.JWTTTL <= 0 {
		return AppConfig{}, errors.New("JWT_TTL must be positive")
	}
	if cfg.AuthRatePerMinute < 0 {
		return AppConfig{}, errors.New("AUTH_RATE_LIMIT must not be negative")
	}
	if cfg.IsProduction() && cfg.JWTSecret == defaultJWTSecret {
		return AppConfig{}, errors.New("JWT_SECRET must be set in production")
	}
	if cfg.IsProduction() && cfg.SeedAdminPassword == DevSeedAdminPassword {
		return AppConfig{}, errors.New("SEED_ADMIN_PASSWORD must not use the development default in production")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// SeedPassword 返回 cmsctl seed 使用的管理员密码；生产环境未配置时返回空字符串。
func (c AppConfig) SeedPassword() string {
	if c.SeedAdminPassword != "" {
		return c.SeedAdminPassword
	}
	if c.IsProduction() {
		return ""
	}
	return DevSeedAdminPassword
}

// UsePostgres reports whether DATABASE_URL selects the postgres driver.
func (c AppConfig) UsePostgres() bool {
	url := strings.TrimSpace(c.DatabaseURL)
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// UseRedisCache reports whether REDIS_URL is configured.
func (c AppConfig) UseRedisCache() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}
