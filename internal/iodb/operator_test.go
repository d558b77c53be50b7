package iodb_test

import (
	"context"
	"testing"

	"github.com/ptnexus/apdb/internal/iodb"
	"github.com/ptnexus/apdb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: These are integration tests that require PostgreSQL.
//
// Configuration starts from built-in defaults (postgres/postgres) with the
// database name forced to "apdb_test" for safety:
//
//   docker run -d --name apdb-test -e POSTGRES_PASSWORD=postgres \
//     -e POSTGRES_DB=apdb_test -p 5432:5432 postgres:16
//
// Skip these tests in CI without PostgreSQL using:
//   go test -short

func TestPgxOperator_NotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "properties")
	assert.Error(t, err)
	_, err = op.CountRows(ctx, "properties")
	assert.Error(t, err)
	_, err = op.GORM()
	assert.Error(t, err)
	assert.Nil(t, op.Pool())
	assert.NoError(t, op.Close())
}

func TestPgxOperator_Connect(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err)
	assert.False(t, exists)

	gdb, err := op.GORM()
	require.NoError(t, err)
	gdb2, err := op.GORM()
	require.NoError(t, err)
	assert.Same(t, gdb, gdb2, "GORM handle should be reused")
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestPgxOperator_TablesAndRows(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()
	require.NoError(t, op.Connect(ctx, iotesting.GetTestDatabaseConfig()))
	defer op.Close()

	_, _ = op.Pool().Exec(ctx, "DROP TABLE IF EXISTS count_test CASCADE")

	exists, err := op.TableExists(ctx, "count_test")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = op.Pool().Exec(ctx,
		"CREATE TABLE count_test (id SERIAL PRIMARY KEY, acct TEXT)")
	require.NoError(t, err)
	_, err = op.Pool().Exec(ctx,
		"INSERT INTO count_test (acct) VALUES ('1'), ('2'), ('3')")
	require.NoError(t, err)

	n, err := op.CountRows(ctx, "count_test")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	hasTables, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, hasTables)

	require.NoError(t, op.DropAllTables(ctx))
	exists, err = op.TableExists(ctx, "count_test")
	require.NoError(t, err)
	assert.False(t, exists)
}
