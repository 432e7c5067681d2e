package postgres

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations embedded in the binary.
// Already-applied migrations are a no-op, so it is safe to run on every start.
func Migrate(databaseURL string, log logging.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "load embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "initialise migration runner")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "apply migrations")
	}

	version, dirty, _ := m.Version()
	log.Info("database schema up to date",
		logging.Any("version", version),
		logging.Bool("dirty", dirty),
	)
	return nil
}
