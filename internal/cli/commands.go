// Package cli provides the Cobra-based maintenance CLI (adminctl): schema
// migrations and admin accounts.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const minPassword = 8

// Entorno is what the commands need from the outside world.
type Entorno struct {
	Cfg    *config.Config
	Admins repository.AdministradorRepository
	// Migrar and Revertir run the embedded migrations against a URL.
	Migrar   func(databaseURL string) error
	Revertir func(databaseURL string, steps int) error
}

// Abridor builds the Entorno lazily so that `hash` needs no database.
type Abridor func() (*Entorno, error)

// NewRootCmd returns the adminctl command tree.
func NewRootCmd(abrir Abridor) *cobra.Command {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Mantenimiento del catalogo: migraciones y administradores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(abrir), adminCmd(abrir), hashCmd())
	return root
}

// ── migrate ──────────────────────────────────────────────────────────────────

func migrateCmd(abrir Abridor) *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Migraciones del esquema"}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica todas las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := abrir()
			if err != nil {
				return err
			}
			if err := env.Migrar(env.Cfg.DatabaseURL); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migraciones aplicadas")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte las ultimas migraciones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return errors.New("--steps debe ser mayor a 0")
			}
			env, err := abrir()
			if err != nil {
				return err
			}
			if err := env.Revertir(env.Cfg.DatabaseURL, steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migracion(es) revertida(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "cantidad de migraciones a revertir")

	cmd.AddCommand(up, down)
	return cmd
}

// ── admin ────────────────────────────────────────────────────────────────────

func adminCmd(abrir Abridor) *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Cuentas de administrador"}

	var username, nombre, password string
	var inactivo bool
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Crea un administrador o reemplaza nombre y contrasena del existente",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("--username es obligatorio")
			}
			if len(password) < minPassword {
				return fmt.Errorf("--password debe tener al menos %d caracteres", minPassword)
			}
			if strings.TrimSpace(nombre) == "" {
				nombre = username
			}

			env, err := abrir()
			if err != nil {
				return err
			}
			hash, err := service.HashPassword(password)
			if err != nil {
				return err
			}
			a := &model.Administrador{Username: username, Nombre: nombre, PasswordHash: hash, Activo: !inactivo}
			if err := env.Admins.Guardar(cmd.Context(), a); err != nil {
				return fmt.Errorf("guardar administrador: %w", err)
			}
			log.Info().Str("username", a.Username).Uint("admin_id", a.ID).Msg("admin saved")
			return imprimir(cmd.OutOrStdout(), dto.AdminResponse{ID: a.ID, Username: a.Username, Nombre: a.Nombre})
		},
	}
	crear.Flags().StringVar(&username, "username", "", "nombre de usuario")
	crear.Flags().StringVar(&nombre, "nombre", "", "nombre visible")
	crear.Flags().StringVar(&password, "password", "", "contrasena en texto plano")
	crear.Flags().BoolVar(&inactivo, "inactivo", false, "crear la cuenta deshabilitada")

	listar := &cobra.Command{
		Use:   "listar",
		Short: "Lista los administradores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := abrir()
			if err != nil {
				return err
			}
			admins, err := env.Admins.List(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]dto.AdminResponse, len(admins))
			for i, a := range admins {
				out[i] = dto.AdminResponse{ID: a.ID, Username: a.Username, Nombre: a.Nombre}
			}
			return imprimir(cmd.OutOrStdout(), out)
		},
	}

	cmd.AddCommand(crear, listar)
	return cmd
}

// ── hash ─────────────────────────────────────────────────────────────────────

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <password>",
		Short: "Imprime el hash bcrypt de una contrasena",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := service.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func imprimir(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
