package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"roomreserve/internal/repository"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions",
}

var sessionCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired sessions",
	Long:  "Remove sessions past their expiry. Safe to run from cron.",
	Run:   runSessionCleanup,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionCleanupCmd)
}

func runSessionCleanup(cmd *cobra.Command, args []string) {
	repo := repository.NewSessionRepository(openDB())

	n, err := repo.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("Failed to clean up sessions: %v", err)
	}
	fmt.Printf("Deleted %d expired session(s)\n", n)
}
