package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		User:            "aniview",
		Password:        "aniview",
		Database:        "aniview",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		Timeout:         10 * time.Second,
	}
}

func TestNewDB(t *testing.T) {
	// This test requires a running PostgreSQL instance
	db, err := NewDB(testConfig())
	if err != nil {
		t.Skipf("Skipping test: PostgreSQL not available: %v", err)
		return
	}
	defer db.Close()

	ctx := context.Background()
	err = db.HealthCheck(ctx)
	require.NoError(t, err)

	stats := db.Stats()
	assert.GreaterOrEqual(t, stats.MaxOpenConnections, 5)
}

func TestHealthCheck(t *testing.T) {
	db, err := NewDB(testConfig())
	if err != nil {
		t.Skipf("Skipping test: PostgreSQL not available: %v", err)
		return
	}
	defer db.Close()

	ctx := context.Background()
	err = db.HealthCheck(ctx)
	assert.NoError(t, err)

	// Cancelled context must fail
	cancelCtx, cancel := context.WithCancel(context.Background())
	cancel()
	err = db.HealthCheck(cancelCtx)
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := NewDB(testConfig())
	if err != nil {
		t.Skipf("Skipping test: PostgreSQL not available: %v", err)
		return
	}
	defer db.Close()

	require.NoError(t, Migrate(db.DB))
	require.NoError(t, Migrate(db.DB))
}
