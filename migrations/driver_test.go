package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func migrateTestInstance(t *testing.T) *migrate.Migrate {
	t.Helper()

	path := filepath.Join(os.TempDir(), fmt.Sprintf("migrate_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(path) })

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	drv, err := NewSQLiteDriver(sqlDB)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	src, err := iofs.New(FS, "sqlite")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return m
}

func TestSQLiteDriver_UpDown(t *testing.T) {
	m := migrateTestInstance(t)

	if err := m.Up(); err != nil {
		t.Fatalf("up: %v", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if dirty {
		t.Error("schema marked dirty after up")
	}
	if version == 0 {
		t.Error("version = 0 after up, want > 0")
	}

	if err := m.Down(); err != nil {
		t.Fatalf("down: %v", err)
	}
	if _, _, err := m.Version(); err != migrate.ErrNilVersion {
		t.Errorf("version after down = %v, want ErrNilVersion", err)
	}
}

func TestSQLiteDriver_TablesCreated(t *testing.T) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("migrate_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(path) })

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	drv, err := NewSQLiteDriver(sqlDB)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	src, err := iofs.New(FS, "sqlite")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := m.Up(); err != nil {
		t.Fatalf("up: %v", err)
	}

	for _, table := range []string{"stock_item", "stock_mutation", "api_token"} {
		var count int
		query := "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
		if err := sqlDB.QueryRow(query, table).Scan(&count); err != nil {
			t.Fatalf("inspect %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s not created by migrations", table)
		}
	}
}

func TestSQLiteDriver_LockIsExclusive(t *testing.T) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("migrate_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(path) })

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	drv, err := NewSQLiteDriver(sqlDB)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}

	if err := drv.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := drv.Lock(); err != database.ErrLocked {
		t.Errorf("second lock = %v, want ErrLocked", err)
	}
	if err := drv.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := drv.Unlock(); err != database.ErrNotLocked {
		t.Errorf("second unlock = %v, want ErrNotLocked", err)
	}
}
