package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/controllers"
	"github.com/tasteline/restaurant-app/models"
)

func setupTestDBForDashboard(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Order{}, &models.OrderItem{}, &models.Table{},
		&models.InventoryItem{}, &models.Transaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupDashboardRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	adminCtrl := controllers.NewAdminController(db)
	r.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	return r
}

func TestDashboardRevenueCountsLocalDayOnly(t *testing.T) {
	db := setupTestDBForDashboard(t)
	r := setupDashboardRouter(db)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// settled a minute before local midnight: yesterday's takings
	db.Create(&models.Transaction{
		Reference: "ref-late-night", OrderID: 1, Amount: 500,
		PaymentMethod: models.MethodUPI, Status: models.PaymentStatusSuccess,
		CreatedAt: startOfDay.Add(-time.Minute),
	})
	db.Create(&models.Transaction{
		Reference: "ref-today", OrderID: 2, Amount: 618,
		PaymentMethod: models.MethodUPI, Status: models.PaymentStatusSuccess,
		CreatedAt: now,
	})
	// unconfirmed attempts never count as revenue
	db.Create(&models.Transaction{
		Reference: "ref-pending", OrderID: 3, Amount: 210,
		PaymentMethod: models.MethodCash, Status: models.PaymentStatusPending,
		CreatedAt: now,
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			RevenueToday float64 `json:"revenue_today"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 618.0, resp.Data.RevenueToday)
}
