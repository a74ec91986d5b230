package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/events"
	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

// StockMonitor periodically scans inventory for items at or below their
// minimum stock level and broadcasts an alert to the admin screens.
type StockMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewStockMonitor(db *gorm.DB) *StockMonitor {
	return &StockMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.checkLevels()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *StockMonitor) checkLevels() {
	low, err := sm.LowStockItems()
	if err != nil {
		utils.ErrorLogger.Printf("Error scanning inventory levels: %v", err)
		return
	}
	if len(low) == 0 {
		return
	}

	utils.InfoLogger.Printf("Found %d items at or below minimum stock", len(low))
	events.InventoryAlert(low)
}

// LowStockItems returns every inventory item at or below its minimum level.
func (sm *StockMonitor) LowStockItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := sm.DB.Where("quantity <= min_stock_level").Find(&items).Error
	return items, err
}
