package ioload

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RowWriter stores rows of legacy staging tables.
type RowWriter interface {
	// WriteRows appends rows to table. Every row has one value per
	// column, nil values are stored as NULL.
	WriteRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Truncate removes all rows from tables.
	Truncate(ctx context.Context, tables []string) error

	// Analyze refreshes planner statistics of tables.
	Analyze(ctx context.Context, tables []string) error
}

// copyWriter writes rows with the PostgreSQL COPY protocol.
type copyWriter struct {
	pool *pgxpool.Pool
}

func newCopyWriter(pool *pgxpool.Pool) RowWriter {
	return &copyWriter{pool: pool}
}

func (w *copyWriter) WriteRows(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	return w.pool.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromRows(rows),
	)
}

func (w *copyWriter) Truncate(ctx context.Context, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	q := "TRUNCATE TABLE " + identifiers(tables) + " RESTART IDENTITY"
	_, err := w.pool.Exec(ctx, q)
	return err
}

// Analyze cannot run inside a transaction block, so it goes
// straight to the pool.
func (w *copyWriter) Analyze(ctx context.Context, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := w.pool.Exec(ctx, "ANALYZE "+identifiers(tables))
	return err
}

func identifiers(tables []string) string {
	names := make([]string, len(tables))
	for i, v := range tables {
		names[i] = pgx.Identifier{v}.Sanitize()
	}
	return strings.Join(names, ", ")
}
