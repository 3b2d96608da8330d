package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationDirs maps a database driver to its migrations subdirectory.
var migrationDirs = map[string]string{
	"postgres": "postgresql",
	"mysql":    "mysql",
}

// RunMigrations applies every pending migration found under dir for driver and
// logs the resulting schema version. An up-to-date schema is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString, dir string) error {
	subdir, ok := migrationDirs[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	source := "file://" + path.Join(dir, subdir)

	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.String("source", source),
	)

	m, err := migrate.New(source, migrateURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("schema already up to date")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("migrations completed",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// migrateURL prefixes a go-sql-driver style MySQL DSN with the scheme
// golang-migrate selects its driver by.
func migrateURL(driver, connectionString string) string {
	if driver == "mysql" && !strings.HasPrefix(connectionString, "mysql://") {
		return "mysql://" + connectionString
	}
	return connectionString
}
