// Package dbtest 为测试提供隔离的内存 sqlite 数据库
package dbtest

import (
	"fmt"
	"testing"
	"yatube/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open 每次调用返回一个独立的、已迁移的内存数据库，测试结束时自动关闭
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.OpenSQLite(dsn, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}
