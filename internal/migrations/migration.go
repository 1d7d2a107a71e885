package migrations

import (
	"encoding/json"
	"log"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
	"github.com/RahulBiswas1704/bowlit-app/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds default data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
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
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData seeds the admin account, subscription plans, add-ons and
// the weekly menu on first boot.
func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	menuRepo := repository.NewMenuRepository(db)

	// Check if admin already exists
	existingUser, err := userService.GetUserByEmail("admin@bowlit.in")
	if err == nil && existingUser != nil {
		log.Println("Admin user already exists")
		return nil
	}

	log.Println("Creating admin user...")
	admin := &models.User{
		Name:     "Bowlit Admin",
		Email:    "admin@bowlit.in",
		Phone:    "9000000001",
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	if err := userService.CreateUser(admin, "admin123"); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created successfully")
		log.Println("Email: admin@bowlit.in")
		log.Println("Password: admin123")
	}

	log.Println("Creating default plans...")
	plans := []models.Plan{
		{
			Slug:        "green-plan",
			Name:        "The Green Bowl",
			Subtitle:    "Pure Vegetarian Homestyle",
			Description: "Nutritious, guilt-free meals for the strict vegetarian.",
			BaseRate:    110,
			Type:        "Veg",
			Features:    featuresJSON("Common Base: Dal + Dry Sabzi", "Hero: Paneer / Kofta / Seasonal Veg"),
		},
		{
			Slug:        "smart-mix",
			Name:        "The Smart Mix",
			Subtitle:    "Best of Both Worlds",
			Description: "3 Days Veg + 3 Days Non-Veg. The perfect balance.",
			BaseRate:    125,
			Type:        "Mix",
			IsPopular:   true,
			Features:    featuresJSON("Mon/Wed/Fri: Non-Veg Hero", "Tue/Thu/Sat: Veg Hero"),
		},
		{
			Slug:        "red-plan",
			Name:        "The Red Bowl",
			Subtitle:    "Daily Protein Power",
			Description: "Egg or Chicken in every single meal. For the gains.",
			BaseRate:    140,
			Type:        "Non-Veg",
			Features:    featuresJSON("Protein in every meal", "Egg or Chicken daily"),
		},
	}
	for i := range plans {
		if err := menuRepo.CreatePlan(&plans[i]); err != nil {
			log.Printf("Warning: Failed to create plan %s: %v", plans[i].Slug, err)
		}
	}

	log.Println("Creating default add-ons...")
	addons := []models.MenuItem{
		{Name: "Masala Chaas", Price: 30, Category: "Drinks", IsAvailable: true},
		{Name: "Extra Chicken (100g)", Price: 80, Category: "Extras", IsAvailable: true},
		{Name: "Gulab Jamun (2 pcs)", Price: 50, Category: "Desserts", IsAvailable: true},
		{Name: "Sweet Lassi", Price: 60, Category: "Drinks", IsAvailable: true},
	}
	for i := range addons {
		if err := menuRepo.CreateMenuItem(&addons[i]); err != nil {
			log.Printf("Warning: Failed to create add-on %s: %v", addons[i].Name, err)
		}
	}

	log.Println("Creating weekly menu...")
	weekly := []models.WeeklyMenu{
		{Day: "Mon", Dish: "Dal Tadka + Jeera Aloo", Special: "Matar Paneer / Egg Curry"},
		{Day: "Tue", Dish: "Masoor Dal + Lauki", Special: "Soyabean / Chicken Stew"},
		{Day: "Wed", Dish: "Dal Makhani (Creamy)", Special: "Dhokar Dalna / Chicken Do Pyaza"},
		{Day: "Thu", Dish: "Chana Masala (Dry)", Special: "Kadhai Paneer / Chicken Kosha"},
		{Day: "Fri", Dish: "Dal Fry (Spicy)", Special: "Malai Kofta / Butter Chicken"},
		{Day: "Sat", Dish: "Khichdi / Veg Pulao", Special: "Begun Bhaja / Omelette Curry"},
	}
	for i := range weekly {
		if err := menuRepo.CreateWeeklyMenuEntry(&weekly[i]); err != nil {
			log.Printf("Warning: Failed to create weekly menu entry %s: %v", weekly[i].Day, err)
		}
	}

	log.Println("Default data created successfully!")
	return nil
}

func featuresJSON(features ...string) string {
	data, err := json.Marshal(features)
	if err != nil {
		return "[]"
	}
	return string(data)
}
