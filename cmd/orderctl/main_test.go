package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "orderctl version=")
}

func TestMigrateCmd_RequiresDSN(t *testing.T) {
	t.Setenv(envPostgresDSN, "")

	_, err := execute(t, "migrate", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), envPostgresDSN)
}

func TestMigrateCmd_RejectsUnknownDirection(t *testing.T) {
	_, err := execute(t, "migrate", "sideways", "--dsn", "postgres://localhost/orders")
	require.Error(t, err)
}

func TestResolveDSN(t *testing.T) {
	t.Setenv(envPostgresDSN, " postgres://env/orders ")

	dsn, err := resolveDSN("  ")
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/orders", dsn)

	dsn, err = resolveDSN("postgres://flag/orders")
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag/orders", dsn)
}

type fakeMigrator struct {
	upSteps   int
	downSteps int
	status    postgres.MigrationStatus
	err       error
}

func (f *fakeMigrator) MigrateUp(_ context.Context, steps int) error {
	f.upSteps = steps
	return f.err
}

func (f *fakeMigrator) MigrateDown(_ context.Context, steps int) error {
	f.downSteps = steps
	return f.err
}

func (f *fakeMigrator) MigrationStatus(context.Context) (postgres.MigrationStatus, error) {
	return f.status, nil
}

func TestRunMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("up prints status", func(t *testing.T) {
		m := &fakeMigrator{status: postgres.MigrationStatus{Version: 3, Applied: true}}
		var out bytes.Buffer

		require.NoError(t, runMigrate(ctx, m, "up", 0, &out))
		assert.Equal(t, 0, m.upSteps)
		assert.Equal(t, "migrate up ok: version=3 applied=true dirty=false\n", out.String())
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		m := &fakeMigrator{status: postgres.MigrationStatus{Version: 2, Applied: true}}
		var out bytes.Buffer

		require.NoError(t, runMigrate(ctx, m, "down", 0, &out))
		assert.Equal(t, 1, m.downSteps)
	})

	t.Run("status on empty database", func(t *testing.T) {
		m := &fakeMigrator{}
		var out bytes.Buffer

		require.NoError(t, runMigrate(ctx, m, "status", 0, &out))
		assert.Contains(t, out.String(), "applied=false")
	})

	t.Run("migration error", func(t *testing.T) {
		m := &fakeMigrator{err: errors.New("dirty database")}

		err := runMigrate(ctx, m, "up", 0, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dirty database")
	})

	t.Run("unknown direction", func(t *testing.T) {
		assert.Error(t, runMigrate(ctx, &fakeMigrator{}, "sideways", 0, &bytes.Buffer{}))
	})
}

func TestSeedCmd_ValidateOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
customers:
  - name: Ann
    email: ann@example.com
products:
  - name: Keyboard
    price: 500
    quantity: 10
  - name: Mouse
    price: 250
    quantity: 2
`), 0o600))

	out, err := execute(t, "seed", "--file", path, "--validate-only")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog ok: customers=1 products=2")
}

func TestSeedCmd_RequiresFile(t *testing.T) {
	_, err := execute(t, "seed")
	require.Error(t, err)
}

func TestSeedCmd_InvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("customers:\n  - name: \"\"\n    email: nope\n"), 0o600))

	_, err := execute(t, "seed", "--file", path, "--validate-only")
	require.Error(t, err)
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, parseBrokers(" broker-1:9092, ,broker-2:9092 "))
	assert.Empty(t, parseBrokers(" , "))
}

func TestDLQReplayCmd_RequiresBrokers(t *testing.T) {
	t.Setenv(envKafkaBrokers, "")

	_, err := execute(t, "dlq", "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), envKafkaBrokers)
}

func TestDLQReplayCmd_RejectsNonPositiveLimit(t *testing.T) {
	_, err := execute(t, "dlq", "replay", "--brokers", "localhost:9092", "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}
