package dbutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/park285/action-reaction-hints/internal/common/config"
)

const pingTimeout = 5 * time.Second

// PostgresOpener: PostgreSQL 연결 함수를 만든다. OpenWithRetry 와 함께 쓴다.
func PostgresOpener(cfg config.PostgresConfig) OpenFunc {
	return func(ctx context.Context) (*gorm.DB, *sql.DB, error) {
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("gorm open failed: %w", err)
		}
		return pingGorm(ctx, db)
	}
}

// SQLiteOpener: 순수 Go SQLite(glebarez) 파일 DB 연결 함수를 만든다.
// ":memory:" 경로는 디렉터리를 만들지 않는다.
func SQLiteOpener(path string) OpenFunc {
	return func(ctx context.Context) (*gorm.DB, *sql.DB, error) {
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite directory failed: %w", err)
			}
		}

		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("gorm open sqlite failed: %w", err)
		}

		db2, sqlDB, err := pingGorm(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		// SQLite 는 단일 쓰기 커넥션만 지원한다.
		sqlDB.SetMaxOpenConns(1)
		return db2, sqlDB, nil
	}
}

func pingGorm(ctx context.Context, db *gorm.DB) (*gorm.DB, *sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("db ping failed: %w", err)
	}
	return db, sqlDB, nil
}
