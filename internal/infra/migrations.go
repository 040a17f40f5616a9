package infra

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migracionesFS embed.FS

func nuevoMigrador(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migracionesFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("iniciar migrador: %w", err)
	}
	return m, nil
}

// EjecutarMigraciones applies every pending up migration.
func EjecutarMigraciones(databaseURL string) error {
	m, err := nuevoMigrador(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, _ := m.Version()
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}

// RevertirMigraciones rolls back steps migrations.
func RevertirMigraciones(databaseURL string, steps int) error {
	if steps <= 0 {
		return errors.New("steps debe ser mayor a 0")
	}
	m, err := nuevoMigrador(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
