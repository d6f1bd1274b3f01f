// Package main implements the entry point for the userhub API server,
// which provides user accounts with email activation, JWT authentication
// and the interests profile feature.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/userhub-io/userhub/internal/platform/postgres"
)

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back the most recent migration and exit")
	skipMigrations := flag.Bool("skip-migrations", false, "do not apply pending migrations on startup")
	flag.Parse()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if *migrateDown {
		if err := postgres.MigrateDown(app.db); err != nil {
			log.Fatalf("Migration rollback failed: %v", err)
		}
		slog.Info("migration rolled back")
		return
	}

	if !*skipMigrations {
		if err := postgres.MigrateUp(app.db); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
