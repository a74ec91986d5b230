package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/config"
	"github.com/tasteline/restaurant-app/middlewares"
	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/router"
	"github.com/tasteline/restaurant-app/services"
	"github.com/tasteline/restaurant-app/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedAccessSecrets(db)

	// Low-stock alerts for the admin dashboard
	stockMonitor := services.NewStockMonitor(db)
	stockMonitor.Interval = 5 * time.Minute
	stockMonitor.Start()
	defer stockMonitor.Stop()

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
		&models.User{},
		&models.Table{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Transaction{},
		&models.InventoryItem{},
		&models.InventoryHistory{},
		&models.Feedback{},
		&models.StaffAccess{},
		&models.AccessSecret{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedAccessSecrets bootstraps the restricted-role registration secrets from
// the environment so a fresh deployment can enroll its first admin.
func seedAccessSecrets(db *gorm.DB) {
	seeds := map[string]string{
		models.RoleAdmin:    os.Getenv("ADMIN_ACCESS_SECRET"),
		models.RoleDelivery: os.Getenv("DELIVERY_ACCESS_SECRET"),
	}
	for role, secret := range seeds {
		if secret == "" {
			continue
		}
		var existing models.AccessSecret
		if err := db.Where("role = ?", role).First(&existing).Error; err == nil {
			continue
		}
		db.Create(&models.AccessSecret{
			Role:      role,
			Secret:    secret,
			UpdatedAt: time.Now(),
		})
		utils.InfoLogger.Printf("Seeded access secret for role %s", role)
	}
}
