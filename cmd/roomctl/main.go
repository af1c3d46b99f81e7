package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"roomreserve/internal/config"
	"roomreserve/internal/database"
	"roomreserve/internal/repository"
)

var rootCmd = &cobra.Command{
	Use:   "roomctl",
	Short: "Administrative CLI for the room reservation service",
	Long:  "Manage users, sessions and seed data without going through the HTTP API.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB loads config and connects; every subcommand goes through it so
// DATABASE_URL behaves exactly like the API server.
func openDB() *gorm.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}
