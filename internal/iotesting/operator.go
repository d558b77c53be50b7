package iotesting

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/db"
	"gorm.io/gorm"
)

// GORMOperator implements db.Operator over an already opened GORM handle,
// usually the in-memory SQLite database from NewSQLiteDB. It has no
// pgx pool, so components that need COPY cannot use it.
type GORMOperator struct {
	DB *gorm.DB
}

var _ db.Operator = (*GORMOperator)(nil)

func (o *GORMOperator) Connect(context.Context, *config.DatabaseConfig) error {
	return nil
}

func (o *GORMOperator) Close() error { return nil }

func (o *GORMOperator) Pool() *pgxpool.Pool { return nil }

func (o *GORMOperator) GORM() (*gorm.DB, error) { return o.DB, nil }

func (o *GORMOperator) TableExists(ctx context.Context, table string) (bool, error) {
	return o.DB.WithContext(ctx).Migrator().HasTable(table), nil
}

func (o *GORMOperator) HasTables(ctx context.Context) (bool, error) {
	tables, err := o.tables(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

// tables skips SQLite internal tables like sqlite_sequence.
func (o *GORMOperator) tables(ctx context.Context) ([]string, error) {
	all, err := o.DB.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, err
	}
	var res []string
	for _, v := range all {
		if !strings.HasPrefix(v, "sqlite_") {
			res = append(res, v)
		}
	}
	return res, nil
}

func (o *GORMOperator) CountRows(ctx context.Context, table string) (int64, error) {
	var res int64
	err := o.DB.WithContext(ctx).Table(table).Count(&res).Error
	return res, err
}

func (o *GORMOperator) DropAllTables(ctx context.Context) error {
	m := o.DB.WithContext(ctx).Migrator()
	tables, err := o.tables(ctx)
	if err != nil {
		return err
	}
	for _, v := range tables {
		if err = m.DropTable(v); err != nil {
			return err
		}
	}
	return nil
}
