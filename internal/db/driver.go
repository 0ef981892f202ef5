package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
)

// Driver hides the differences between the supported stores.
type Driver interface {
	Name() string
	Open(dsn string) gorm.Dialector
	// Configure runs once after the connection is opened.
	Configure(db *gorm.DB) error
}

func DriverFor(name string) (Driver, error) {
	switch name {
	case config.DriverPostgres:
		return PostgresDriver{}, nil
	case config.DriverSQLite:
		return SQLiteDriver{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", name)
	}
}

type PostgresDriver struct{}

func (PostgresDriver) Name() string { return config.DriverPostgres }

func (PostgresDriver) Open(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

func (PostgresDriver) Configure(*gorm.DB) error { return nil }

type SQLiteDriver struct{}

func (SQLiteDriver) Name() string { return config.DriverSQLite }

// Open turns on foreign key enforcement for every pooled connection.
func (SQLiteDriver) Open(dsn string) gorm.Dialector {
	return sqlite.Open(SQLiteDSN(dsn))
}

// Configure pins the pool to a single connection; sqlite serialises
// writers anyway and this avoids "database is locked" under load.
func (SQLiteDriver) Configure(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	return nil
}

func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
