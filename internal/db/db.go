package db

import (
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"itemtrail/internal/config"
	"itemtrail/internal/models"
)

// Connect opens the datastore named by DATABASE_URL. The scheme picks the
// dialect: postgres:// and postgresql:// go to Postgres, sqlite:// (or a
// memory/file DSN) goes to SQLite, everything else is treated as a MySQL DSN.
func Connect(cfg config.Config) *gorm.DB {
	gdb, err := gorm.Open(dialectorFor(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevelFor(cfg.LogLevel)),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("❌ Failed to access underlying connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}

	log.Println("✅ Database connected successfully")
	return gdb
}

func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.Contains(dsn, ":memory:"), strings.Contains(dsn, "mode=memory"), strings.HasSuffix(dsn, ".db"):
		return sqlite.Open(dsn)
	default:
		return mysql.Open(dsn)
	}
}

func logLevelFor(level string) logger.LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return logger.Info
	case "ERROR":
		return logger.Error
	case "SILENT":
		return logger.Silent
	default:
		return logger.Warn
	}
}

func AutoMigrate(gdb *gorm.DB, models ...interface{}) {
	if err := gdb.AutoMigrate(models...); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
}

// Seed inserts a few example items. Idempotent, keyed on name.
func Seed(gdb *gorm.DB) error {
	for _, name := range []string{"Apple", "Banana", "Cherry"} {
		item := models.Item{Name: name}
		if err := gdb.Where("name = ?", name).FirstOrCreate(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
