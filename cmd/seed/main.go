package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sapore/backend/config"
	"github.com/sapore/backend/internal/database"
	"github.com/sapore/backend/internal/models"
)

var menuItems = []models.MenuItem{
	{Name: "Bruschetta al Pomodoro", Price: 7.99, Description: "Grilled bread with fresh tomatoes, basil and garlic", ImageURL: "/static/images/bruschetta.jpg", Category: "Appetizer", Rating: 4.6},
	{Name: "Arancini", Price: 8.49, Description: "Crispy risotto balls stuffed with mozzarella", ImageURL: "/static/images/arancini.jpg", Category: "Appetizer", Rating: 4.4},
	{Name: "Caprese Salad", Price: 9.99, Description: "Buffalo mozzarella, vine tomatoes and basil", ImageURL: "/static/images/caprese.jpg", Category: "Salad", Rating: 4.5},
	{Name: "Caesar Salad", Price: 8.99, Description: "Romaine hearts, parmesan and house dressing", ImageURL: "/static/images/caesar.jpg", Category: "Salad", Rating: 4.2},
	{Name: "Margherita Pizza", Price: 13.99, Description: "San Marzano tomatoes, fior di latte and basil", ImageURL: "/static/images/margherita.jpg", Category: "Main Course", Rating: 4.8},
	{Name: "Spaghetti Carbonara", Price: 15.99, Description: "Guanciale, pecorino romano and egg yolk", ImageURL: "/static/images/carbonara.jpg", Category: "Main Course", Rating: 4.9},
	{Name: "Risotto ai Funghi", Price: 16.49, Description: "Carnaroli rice with porcini mushrooms", ImageURL: "/static/images/risotto.jpg", Category: "Main Course", Rating: 4.5},
	{Name: "Grilled Salmon", Price: 19.99, Description: "Atlantic salmon with lemon butter and greens", ImageURL: "/static/images/salmon.jpg", Category: "Main Course", Rating: 4.7},
	{Name: "Tiramisu", Price: 6.99, Description: "Espresso-soaked ladyfingers with mascarpone", ImageURL: "/static/images/tiramisu.jpg", Category: "Dessert", Rating: 4.9},
	{Name: "Panna Cotta", Price: 6.49, Description: "Vanilla cream with berry coulis", ImageURL: "/static/images/pannacotta.jpg", Category: "Dessert", Rating: 4.3},
	{Name: "Espresso", Price: 2.99, Description: "Double shot of our house roast", ImageURL: "/static/images/espresso.jpg", Category: "Beverage", Rating: 4.4},
	{Name: "Homemade Lemonade", Price: 3.99, Description: "Fresh-squeezed with a sprig of mint", ImageURL: "/static/images/lemonade.jpg", Category: "Beverage", Rating: 4.1},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seedMenu(db); err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}

	if err := seedUsers(db); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Println("Seeding complete")
}

func seedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Menu already has %d items, skipping", count)
		return nil
	}
	if err := db.Create(&menuItems).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d menu items", len(menuItems))
	return nil
}

func seedUsers(db *gorm.DB) error {
	users := []struct {
		username string
		email    string
		password string
		isAdmin  bool
	}{
		{"admin", "admin@sapore.example", "admin123", true},
		{"demo", "demo@sapore.example", "demo1234", false},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", u.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			IsAdmin:      u.isAdmin,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Seeded user %s", u.username)
	}
	return nil
}
