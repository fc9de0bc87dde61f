package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

const versionTable = "schema_migrations"

// SQLiteDriver runs migrations over an already-open sqlite handle.
// The stock migrate sqlite driver registers a second database/sql
// driver under the name "sqlite", which collides with the one the
// application opens through gorm; wrapping the existing handle keeps
// a single sqlite implementation in the binary.
type SQLiteDriver struct {
	db     *sql.DB
	locked atomic.Bool
}

// NewSQLiteDriver wraps db and ensures the version table exists.
func NewSQLiteDriver(db *sql.DB) (*SQLiteDriver, error) {
	d := &SQLiteDriver{db: db}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (version uint64, dirty bool);
CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON %s (version);`, versionTable, versionTable)
	if _, err := d.db.Exec(query); err != nil {
		return nil, err
	}
	return d, nil
}

// Open is part of database.Driver but unused: the driver is always
// constructed around an existing handle.
func (d *SQLiteDriver) Open(url string) (database.Driver, error) {
	return nil, errors.New("migrations: sqlite driver must wrap an open handle")
}

// Close is a no-op; the caller owns the handle.
func (d *SQLiteDriver) Close() error { return nil }

func (d *SQLiteDriver) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

func (d *SQLiteDriver) Unlock() error {
	if !d.locked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

func (d *SQLiteDriver) Run(migration io.Reader) error {
	statements, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	query := string(statements)
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if _, err := d.db.Exec(query); err != nil {
		return &database.Error{OrigErr: err, Query: statements}
	}
	return nil
}

func (d *SQLiteDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM " + versionTable); err != nil {
		tx.Rollback()
		return err
	}
	if version >= 0 || (version == database.NilVersion && dirty) {
		query := fmt.Sprintf("INSERT INTO %s (version, dirty) VALUES (?, ?)", versionTable)
		if _, err := tx.Exec(query, version, dirty); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (d *SQLiteDriver) Version() (int, bool, error) {
	var version int
	var dirty bool
	query := "SELECT version, dirty FROM " + versionTable + " LIMIT 1"
	err := d.db.QueryRow(query).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return database.NilVersion, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty, nil
}

func (d *SQLiteDriver) Drop() error {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	rows, err := d.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, table := range tables {
		if _, err := d.db.Exec("DROP TABLE " + table); err != nil {
			return err
		}
	}
	return nil
}
