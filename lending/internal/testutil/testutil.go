// Package testutil opens throwaway sqlite stores for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/repository"
	"github.com/Astemirdum/book-circle/lending/migrations"
	"github.com/Astemirdum/book-circle/pkg/db"
)

func NewRepository(t testing.TB) repository.Repository {
	t.Helper()
	cfg := &db.Config{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "lending.db"),
	}
	conn, err := db.NewDB(context.Background(), cfg, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo, err := repository.NewRepository(conn, cfg.Driver, zap.NewNop())
	require.NoError(t, err)
	return repo
}
