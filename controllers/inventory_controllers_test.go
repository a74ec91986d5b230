package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/controllers"
	"github.com/tasteline/restaurant-app/models"
)

func setupTestDBForInventory(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.InventoryItem{}, &models.InventoryHistory{}, &models.User{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupInventoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	invCtrl := controllers.NewInventoryController(db)
	r.GET("/inventory", invCtrl.GetAllItems)
	r.POST("/inventory", invCtrl.CreateItem)
	r.POST("/inventory/:item_id/adjust", invCtrl.AdjustItem)
	r.GET("/inventory/history", invCtrl.GetHistory)
	return r
}

func postInventory(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedInventoryItem(db *gorm.DB, quantity, minLevel float64) models.InventoryItem {
	item := models.InventoryItem{
		Name: "Basmati Rice", Category: "grains", Quantity: quantity,
		Unit: "kg", CostPerUnit: 90, MinStockLevel: minLevel, Vendor: "Annapurna Traders",
	}
	db.Create(&item)
	return item
}

func TestAdjustAddAppendsHistory(t *testing.T) {
	db := setupTestDBForInventory(t)
	r := setupInventoryRouter(db)
	item := seedInventoryItem(db, 10, 5)

	w := postInventory(t, r, fmt.Sprintf("/inventory/%d/adjust", item.ID),
		map[string]interface{}{"action": "add", "amount": 25.0})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.InventoryItem
	db.First(&got, item.ID)
	assert.Equal(t, 35.0, got.Quantity)
	assert.NotNil(t, got.LastRestocked, "adding stock records a restock time")

	var history []models.InventoryHistory
	db.Find(&history)
	assert.Len(t, history, 1)
	assert.Equal(t, models.InventoryActionAdd, history[0].Action)
	assert.Equal(t, 10.0, history[0].PrevQuantity)
	assert.Equal(t, 25.0, history[0].Delta)
	assert.Equal(t, "Basmati Rice", history[0].ItemName)
}

func TestAdjustRemoveRecordsNegativeDelta(t *testing.T) {
	db := setupTestDBForInventory(t)
	r := setupInventoryRouter(db)
	item := seedInventoryItem(db, 10, 5)

	w := postInventory(t, r, fmt.Sprintf("/inventory/%d/adjust", item.ID),
		map[string]interface{}{"action": "remove", "amount": 4.0})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.InventoryItem
	db.First(&got, item.ID)
	assert.Equal(t, 6.0, got.Quantity)

	var history []models.InventoryHistory
	db.Find(&history)
	assert.Len(t, history, 1)
	assert.Equal(t, models.InventoryActionRemove, history[0].Action)
	assert.Equal(t, 10.0, history[0].PrevQuantity)
	assert.Equal(t, -4.0, history[0].Delta)
}

func TestAdjustRejectsOverdraw(t *testing.T) {
	db := setupTestDBForInventory(t)
	r := setupInventoryRouter(db)
	item := seedInventoryItem(db, 3, 5)

	w := postInventory(t, r, fmt.Sprintf("/inventory/%d/adjust", item.ID),
		map[string]interface{}{"action": "remove", "amount": 8.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "only 3.00 in stock")

	// overdraw leaves both the item and the history untouched
	var got models.InventoryItem
	db.First(&got, item.ID)
	assert.Equal(t, 3.0, got.Quantity)

	var count int64
	db.Model(&models.InventoryHistory{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdjustRejectsUnknownAction(t *testing.T) {
	db := setupTestDBForInventory(t)
	r := setupInventoryRouter(db)
	item := seedInventoryItem(db, 10, 5)

	w := postInventory(t, r, fmt.Sprintf("/inventory/%d/adjust", item.ID),
		map[string]interface{}{"action": "audit", "amount": 1.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLowStockFilter(t *testing.T) {
	db := setupTestDBForInventory(t)
	r := setupInventoryRouter(db)
	seedInventoryItem(db, 3, 5)
	db.Create(&models.InventoryItem{
		Name: "Paneer", Category: "dairy", Quantity: 12, Unit: "kg", MinStockLevel: 2,
	})

	req := httptest.NewRequest(http.MethodGet, "/inventory?low=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.InventoryItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Basmati Rice", resp.Data[0].Name)
	assert.True(t, resp.Data[0].LowStock())
}

func TestCreateItemSetsRestockTime(t *testing.T) {
	db := setupTestDBForInventory(t)
	r := setupInventoryRouter(db)

	w := postInventory(t, r, "/inventory", map[string]interface{}{
		"name": "Tomatoes", "category": "vegetables", "quantity": 20.0,
		"unit": "kg", "cost_per_unit": 40.0, "min_stock_level": 8.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.InventoryItem
	db.Where("name = ?", "Tomatoes").First(&item)
	assert.NotNil(t, item.LastRestocked)
}
