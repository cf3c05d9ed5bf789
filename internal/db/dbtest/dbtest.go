// Package dbtest opens throwaway SQLite databases for tests that need a real
// SQL engine with foreign keys enforced.
package dbtest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"acme-hr-api/internal/db"
)

func Open(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := filepath.Join(tb.TempDir(), "hr.db") + "?_foreign_keys=on"
	database, err := db.Open(translatingDialector{Dialector: sqlite.Open(dsn)}, zerolog.Nop())
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

// OpenSeeded is Open followed by db.Reset.
func OpenSeeded(tb testing.TB) *gorm.DB {
	tb.Helper()

	database := Open(tb)
	if err := db.Reset(context.Background(), database); err != nil {
		tb.Fatalf("reset database: %v", err)
	}
	return database
}

// OpenPostgres connects to TEST_DATABASE_URL and resets it. Tests using it
// are skipped when the variable is unset.
func OpenPostgres(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		tb.Skip("postgres tests are disabled; set TEST_DATABASE_URL to enable")
	}

	database, err := db.Open(postgres.Open(dsn), zerolog.Nop())
	if err != nil {
		tb.Fatalf("open postgres: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.Reset(context.Background(), database); err != nil {
		tb.Fatalf("reset database: %v", err)
	}
	return database
}

// translatingDialector maps SQLite constraint failures onto the gorm errors
// the postgres driver produces, so error mapping behaves the same under test.
type translatingDialector struct {
	gorm.Dialector
}

func (d translatingDialector) Translate(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return gorm.ErrForeignKeyViolated
		case sqlite3.ErrConstraintCheck:
			return gorm.ErrCheckConstraintViolated
		}
	}

	if translator, ok := d.Dialector.(gorm.ErrorTranslator); ok {
		return translator.Translate(err)
	}
	return err
}
