package logs

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	cleanup := func() { _ = db.Close() }
	return gdb, mock, cleanup
}

// newTestDB opens a private in-memory sqlite with the logs table and a
// minimal staff table for the name join.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&SystemLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE staff (id INTEGER PRIMARY KEY, firstname TEXT, lastname TEXT)`).Error; err != nil {
		t.Fatalf("create staff: %v", err)
	}

	return db
}

func seedLog(t *testing.T, db *gorm.DB, l SystemLog) SystemLog {
	t.Helper()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	if err := db.Create(&l).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}
	return l
}

func ptrStr(s string) *string { return &s }
func ptrUint(u uint) *uint    { return &u }

type assertErr string

func (e assertErr) Error() string { return string(e) }
