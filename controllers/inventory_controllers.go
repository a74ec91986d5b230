package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetAllItems -> ?low=true filters to items at or below minimum level.
func (ic *InventoryController) GetAllItems(c *gin.Context) {
	q := ic.DB.Order("category, name")
	if c.Query("low") == "true" {
		q = q.Where("quantity <= min_stock_level")
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var items []models.InventoryItem
	if err := q.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory items", items)
}

// GetItemByID
func (ic *InventoryController) GetItemByID(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item", item)
}

// CreateItem
func (ic *InventoryController) CreateItem(c *gin.Context) {
	var req struct {
		Name          string     `json:"name" binding:"required"`
		Category      string     `json:"category" binding:"required"`
		Quantity      float64    `json:"quantity"`
		Unit          string     `json:"unit" binding:"required"`
		CostPerUnit   float64    `json:"cost_per_unit"`
		MinStockLevel float64    `json:"min_stock_level"`
		Vendor        string     `json:"vendor"`
		ExpiryDate    *time.Time `json:"expiry_date"`
		Location      *string    `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity cannot be negative"))
		return
	}

	now := time.Now()
	item := models.InventoryItem{
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		CostPerUnit:   req.CostPerUnit,
		MinStockLevel: req.MinStockLevel,
		Vendor:        req.Vendor,
		ExpiryDate:    req.ExpiryDate,
		Location:      req.Location,
	}
	if req.Quantity > 0 {
		item.LastRestocked = &now
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Inventory item created: %s (%.2f %s)", item.Name, item.Quantity, item.Unit)
	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

// UpdateItem -> edits descriptive fields. Quantity changes go through
// AdjustItem so the history log stays complete.
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name          *string    `json:"name"`
		Category      *string    `json:"category"`
		Unit          *string    `json:"unit"`
		CostPerUnit   *float64   `json:"cost_per_unit"`
		MinStockLevel *float64   `json:"min_stock_level"`
		Vendor        *string    `json:"vendor"`
		ExpiryDate    *time.Time `json:"expiry_date"`
		Location      *string    `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.CostPerUnit != nil {
		item.CostPerUnit = *req.CostPerUnit
	}
	if req.MinStockLevel != nil {
		item.MinStockLevel = *req.MinStockLevel
	}
	if req.Vendor != nil {
		item.Vendor = *req.Vendor
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.Location != nil {
		item.Location = req.Location
	}
	item.UpdatedAt = time.Now()

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// AdjustItem -> add/remove stock; every adjustment appends a history row.
func (ic *InventoryController) AdjustItem(c *gin.Context) {
	var req struct {
		Action string  `json:"action" binding:"required"`
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("amount must be positive"))
		return
	}
	if req.Action != models.InventoryActionAdd && req.Action != models.InventoryActionRemove {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown action %q", req.Action))
		return
	}

	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	prev := item.Quantity
	delta := req.Amount
	now := time.Now()

	switch req.Action {
	case models.InventoryActionAdd:
		item.Quantity += req.Amount
		item.LastRestocked = &now
	case models.InventoryActionRemove:
		if req.Amount > item.Quantity {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("cannot remove %.2f %s, only %.2f in stock", req.Amount, item.Unit, item.Quantity))
			return
		}
		item.Quantity -= req.Amount
		delta = -req.Amount
	}
	item.UpdatedAt = now

	actor := ic.actorEmail(c)
	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		history := models.InventoryHistory{
			ItemID:       item.ID,
			ItemName:     item.Name,
			Action:       req.Action,
			PrevQuantity: prev,
			Delta:        delta,
			Actor:        actor,
			CreatedAt:    now,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Inventory %s: %s %+.2f %s (now %.2f) by %s",
		req.Action, item.Name, delta, item.Unit, item.Quantity, actor)
	utils.RespondJSON(c, http.StatusOK, "Inventory adjusted", item)
}

// GetHistory -> append-only adjustment log, newest first. Optional
// ?item_id= filter.
func (ic *InventoryController) GetHistory(c *gin.Context) {
	q := ic.DB.Order("created_at DESC")
	if itemID := c.Query("item_id"); itemID != "" {
		q = q.Where("item_id = ?", itemID)
	}

	var history []models.InventoryHistory
	if err := q.Find(&history).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory history", history)
}

// DeleteItem
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", gin.H{"id": item.ID})
}

// actorEmail resolves the acting user's email for the audit trail.
func (ic *InventoryController) actorEmail(c *gin.Context) string {
	userID, exists := c.Get("user_id")
	if !exists {
		return "unknown"
	}
	var user models.User
	if err := ic.DB.First(&user, userID).Error; err != nil {
		return fmt.Sprintf("user:%v", userID)
	}
	return user.Email
}
