// Package testutil provides helpers shared by repository, command and integration tests.
//
// Repository tests run against go-sqlmock so they do not need a live database:
//
//	db, mock := testutil.NewMockDB(t)
//	mock.ExpectExec("DELETE FROM users").WithArgs(testutil.BinaryUUID(t, id)).
//		WillReturnResult(sqlmock.NewResult(0, 1))
//
// Integration tests use a live database, skipped when it is unreachable:
//
//	db, dsn := testutil.SetupLiveDB(t, "postgres")
//	defer testutil.TeardownDB(t, db)
//
// Migration Path:
//
// Migrations are discovered by walking up from the current working directory
// until a "migrations/{dbType}" directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewMockDB opens a sqlmock database that fails the test on unmet expectations.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
		_ = db.Close()
	})

	return db, mock
}

// BinaryUUID returns the BINARY(16) encoding MySQL repositories bind for id.
func BinaryUUID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()

	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

// MigrationsPath resolves the absolute path to migration files for the specified database type.
// Walks up the directory tree from current working directory to find the migrations folder.
func MigrationsPath(dbType string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		migrationsPath := filepath.Join(dir, "migrations", dbType)
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found for %s (started from %s)", dbType, dir)
		}
		dir = parent
	}
}
