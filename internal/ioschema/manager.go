// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/db"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the canonical schema and the legacy staging
// tables using GORM AutoMigrate.
func (m *manager) Create(
	ctx context.Context,
	_ *config.Config,
) error {
	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}
	slog.Info("Canonical schema created",
		"tables", len(schema.AllModels()))

	if err = schema.MigrateLegacy(gormDB); err != nil {
		return CreateSchemaError(err)
	}
	slog.Info("Legacy staging tables created",
		"tables", len(schema.LegacyModels()))

	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	_ *config.Config,
) error {
	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}
	if err = schema.MigrateLegacy(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	return nil
}

func (m *manager) gorm(ctx context.Context) (*gorm.DB, error) {
	gormDB, err := m.operator.GORM()
	if err != nil {
		return nil, NotConnectedError(err)
	}
	return gormDB.WithContext(ctx), nil
}
