package main

import (
	"context"
	"os"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/cli"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/infra"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	abrir := func() (*cli.Entorno, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		db, err := infra.NewDatabase(cfg.DatabaseURL, false)
		if err != nil {
			return nil, err
		}
		return &cli.Entorno{
			Cfg:      cfg,
			Admins:   repository.NewAdministradorRepository(db),
			Migrar:   infra.EjecutarMigraciones,
			Revertir: infra.RevertirMigraciones,
		}, nil
	}

	if err := cli.NewRootCmd(abrir).ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("adminctl")
		os.Exit(1)
	}
}
