package bootstrap

import (
	"database/sql"
	"errors"

	"webstore-service/internal/pkg/config"
	"webstore-service/internal/pkg/errs"
	"webstore-service/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/fx"
)

var MigrationModule = fx.Module("migrations",
	fx.Invoke(RunMigrations),
)

// RunMigrations applies pending schema migrations before the rest of the
// application starts taking traffic.
func RunMigrations(cfg config.Config) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errs.Wrap(err, "failed to load embedded migrations")
	}

	sqlDB, err := sql.Open("pgx", cfg.DB.BuildDSN())
	if err != nil {
		return errs.Wrap(err, "failed to open migration connection")
	}
	defer sqlDB.Close()

	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		return errs.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return errs.Wrap(err, "failed to create migrator")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errs.Wrap(err, "failed to apply migrations")
	}

	return nil
}
