package iotesting

import (
	"database/sql"
	"testing"

	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens an in-memory SQLite database with foreign keys
// enforced, and creates canonical and legacy tables in it.
//
// The pool is limited to one connection, so every connection sees the
// same in-memory database. Code under test must therefore do all work
// inside a transaction through the transaction handle.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open("file::memory:?_foreign_keys=1"),
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		t.Fatalf("cannot open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("cannot get sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = schema.Migrate(db); err != nil {
		t.Fatalf("cannot create canonical schema: %v", err)
	}
	if err = schema.MigrateLegacy(db); err != nil {
		t.Fatalf("cannot create legacy schema: %v", err)
	}

	return db
}

// Str makes a valid sql.NullString. Blank strings stay valid,
// like an empty field in a legacy file loaded without NULL conversion.
func Str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// Null is an absent legacy value.
var Null = sql.NullString{}
