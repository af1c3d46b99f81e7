package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  "Create and list reservation service accounts.",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run:   runUserList,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Run:   runUserCreate,
}

var (
	userName     string
	userEmail    string
	userPassword string
	userRole     string
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVarP(&userName, "name", "n", "", "Full name (required)")
	userCreateCmd.Flags().StringVarP(&userEmail, "email", "e", "", "Email (required)")
	userCreateCmd.Flags().StringVarP(&userPassword, "password", "p", "", "Password (required)")
	userCreateCmd.Flags().StringVarP(&userRole, "role", "r", "guest", "Role (guest/admin)")
	userCreateCmd.MarkFlagRequired("name")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")
}

func runUserList(cmd *cobra.Command, args []string) {
	repo := repository.NewUserRepository(openDB())

	users, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func runUserCreate(cmd *cobra.Command, args []string) {
	role := domain.UserRole(userRole)
	if role != domain.RoleGuest && role != domain.RoleAdmin {
		log.Fatalf("Invalid role %q: must be guest or admin", userRole)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	repo := repository.NewUserRepository(openDB())
	u := &domain.User{
		Name:         userName,
		Email:        userEmail,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created %s user %s (id=%d)\n", u.Role, u.Email, u.ID)
}
