// Comando migrate: aplica o revierte el esquema de db/migrations.
//
//	migrate up | down | steps N | version
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/cierre-fiscal/pkg/config"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

const usage = "Uso: migrate [up|down|steps N|version]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	m, err := migrate.New(cfg.DB.MigrationsSource, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.DB.MigrationsSource).Msg("crear instancia de migrate")
	}
	defer m.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migración up fallida")
		}
		log.Info().Msg("migraciones aplicadas")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migración down fallida")
		}
		log.Info().Msg("migraciones revertidas")

	case "steps":
		if len(os.Args) < 3 {
			log.Fatal().Msg("steps requiere un número")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("argumento de steps inválido")
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migración steps fallida")
		}
		log.Info().Int("steps", n).Msg("pasos de migración aplicados")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("obtener versión")
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("comando desconocido: %s\n%s\n", cmd, usage)
		os.Exit(1)
	}
}
