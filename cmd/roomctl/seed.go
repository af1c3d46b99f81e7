package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo rooms and an admin account",
	Long:  "Populate an empty database with sample rooms and an admin user for local development.",
	Run:   runSeed,
}

var (
	seedAdminEmail    string
	seedAdminPassword string
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@example.com", "Admin email")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "admin123", "Admin password")
}

func demoRooms() []domain.Room {
	return []domain.Room{
		{
			Name:        "Garden View",
			Number:      101,
			Category:    domain.CategoryStandard,
			Description: "Ground floor room overlooking the garden",
			Price:       95,
			Capacity:    2,
			Amenities:   []string{"wifi", "tv"},
			IsAvailable: true,
		},
		{
			Name:        "City Standard",
			Number:      102,
			Category:    domain.CategoryStandard,
			Description: "Compact double with a street view",
			Price:       85,
			Capacity:    2,
			Amenities:   []string{"wifi"},
			IsAvailable: true,
		},
		{
			Name:        "Harbor Deluxe",
			Number:      201,
			Category:    domain.CategoryDeluxe,
			Description: "Corner room with harbor view and king bed",
			Price:       160,
			Capacity:    3,
			Amenities:   []string{"wifi", "tv", "minibar"},
			IsAvailable: true,
		},
		{
			Name:        "Skyline Deluxe",
			Number:      202,
			Category:    domain.CategoryDeluxe,
			Description: "Top-floor double with balcony",
			Price:       175,
			Capacity:    2,
			Amenities:   []string{"wifi", "tv", "balcony"},
			IsAvailable: true,
		},
		{
			Name:        "Presidential Suite",
			Number:      301,
			Category:    domain.CategorySuite,
			Description: "Two-room suite with lounge and jacuzzi",
			Price:       340,
			Capacity:    4,
			Amenities:   []string{"wifi", "tv", "minibar", "jacuzzi"},
			IsAvailable: true,
		},
	}
}

func runSeed(cmd *cobra.Command, args []string) {
	db := openDB()
	ctx := context.Background()

	roomRepo := repository.NewRoomRepository(db)
	userRepo := repository.NewUserRepository(db)

	for _, room := range demoRooms() {
		r := room
		if err := roomRepo.Create(ctx, &r); err != nil {
			log.Printf("Skipping room %d: %v", r.Number, err)
			continue
		}
		fmt.Printf("Seeded room %d (%s)\n", r.Number, r.Name)
	}

	exists, err := userRepo.ExistsByEmail(ctx, seedAdminEmail)
	if err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if exists {
		fmt.Printf("Admin %s already present\n", seedAdminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := &domain.User{
		Name:         "Administrator",
		Email:        seedAdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Seeded admin %s\n", admin.Email)
}
