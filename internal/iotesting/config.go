// Package iotesting provides shared test utilities for unit and
// integration tests. This is an internal package for test
// infrastructure only.
package iotesting

import (
	"github.com/ptnexus/apdb/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "apdb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from defaults and overrides the database name to
// TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(TestDatabaseName),
	})
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
