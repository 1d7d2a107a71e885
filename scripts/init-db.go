package main

import (
	"fmt"
	"log"

	"github.com/RahulBiswas1704/bowlit-app/internal/config"
	"github.com/RahulBiswas1704/bowlit-app/internal/database"
	"github.com/RahulBiswas1704/bowlit-app/internal/migrations"
	"github.com/RahulBiswas1704/bowlit-app/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.MenuItem{},
		&models.Plan{},
		&models.WeeklyMenu{},
		&models.Rider{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables and seed default data
	fmt.Println("Creating tables and seeding defaults...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("Database initialized successfully!")
}
