package db

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

const defaultDatabasePath = "data/bionutrex.db"

// Options 描述数据库连接参数。
type Options struct {
	// URL 为 postgres DSN，留空时使用 SQLite 文件。
	URL    string
	Path   string
	Logger *slog.Logger
}

// Init 初始化数据库连接并执行自动迁移。
// Path 为空时将回退到默认值 data/bionutrex.db。
func Init(opts Options) error {
	gdb, err := Open(opts)
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Open 根据配置选择 postgres 或 sqlite 驱动建立连接。
func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newGormLogger(opts.Logger)}

	if url := strings.TrimSpace(opts.URL); url != "" {
		return gorm.Open(postgres.Open(url), cfg)
	}

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = defaultDatabasePath
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	return gorm.Open(sqlite.Open(sqliteDSN(path)), cfg)
}

// Migrate 自动迁移模式，为核心模型创建表
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&Admin{},
		&Slider{},
		&HomeSection{},
		&SectionImage{},
		&BlogPost{},
	)
}

// sqliteDSN 打开外键约束，使 section_images 的级联删除生效。
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func newGormLogger(log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}

	return logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
