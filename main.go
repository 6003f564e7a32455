package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/config"
	"github.com/tabletap/ordering-app/middlewares"
	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/router"
	"github.com/tabletap/ordering-app/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedDefaultTenant(db)

	go utils.CleanupBlacklist()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.TaxConfig{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedDefaultTenant gives a fresh database one tenant so the API is usable
// out of the box.
func seedDefaultTenant(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Tenant{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	tenant := models.Tenant{Name: "Default Restaurant", Slug: "default", DefaultCurrency: "IDR"}
	if err := db.Create(&tenant).Error; err != nil {
		utils.ErrorLogger.Printf("failed to seed default tenant: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded default tenant (id=%d)", tenant.ID)
}
