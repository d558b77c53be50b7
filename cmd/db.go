package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iodb"
	"github.com/ptnexus/apdb/pkg/db"
)

// connect opens the connection pool described by cfg.Database.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	return op, nil
}

// requireSchema fails when 'apdb create' was never run
// against the database.
func requireSchema(ctx context.Context, op db.Operator) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(
			cfg.Database.Host, cfg.Database.Database,
		)
	}
	return nil
}
