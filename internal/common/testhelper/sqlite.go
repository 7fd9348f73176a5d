package testhelper

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/park285/action-reaction-hints/internal/common/dbutil"
)

// NewSQLiteDB: 테스트용 인메모리 SQLite(gorm) DB 를 생성합니다.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, sqlDB, err := dbutil.SQLiteOpener(":memory:")(context.Background())
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
