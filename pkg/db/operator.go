package db

import (
	"context"

	"github.com/ptnexus/apdb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// and a GORM handle for high-level lifecycle components (SchemaManager,
// Loader, Bootstrapper, Migrator) to execute their specialized operations.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() enables components to use performance-critical features (CopyFrom for bulk inserts)
// - GORM() shares the same pool for model-based work and transactions
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for high-level components to
	// execute specialized SQL operations.
	Pool() *pgxpool.Pool

	// GORM returns a GORM handle that works on top of Pool().
	// The handle is created once and reused.
	GORM() (*gorm.DB, error)

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// CountRows returns the number of rows in a table.
	CountRows(ctx context.Context, tableName string) (int64, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
