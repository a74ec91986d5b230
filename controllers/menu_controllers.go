package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> public listing; ?available=true hides unavailable items.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	q := mc.DB.Order("category, name")
	if c.Query("available") == "true" {
		q = q.Where("is_available = ?", true)
	}

	var menus []models.Menu
	if err := q.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenusByCategory -> ?category=<free-text label>
func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category is required"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Where("category = ?", category).Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus in category "+category, menus)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuReq struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Category     string  `json:"category" binding:"required"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsAvailable  *bool   `json:"is_available"`
	IsPopular    *bool   `json:"is_popular"`
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVegetarian: req.IsVegetarian,
		IsAvailable:  true,
		IsPopular:    req.IsPopular,
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu created: %s (%.2f, %s)", menu.Name, menu.Price, menu.Category)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> partial update. Placed orders keep their line snapshots, so
// a price edit here never changes an existing order.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		Category     *string  `json:"category"`
		IsVegetarian *bool    `json:"is_vegetarian"`
		IsAvailable  *bool    `json:"is_available"`
		IsPopular    *bool    `json:"is_popular"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be positive"))
			return
		}
		menu.Price = *req.Price
	}
	if req.Category != nil {
		menu.Category = *req.Category
	}
	if req.IsVegetarian != nil {
		menu.IsVegetarian = *req.IsVegetarian
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}
	if req.IsPopular != nil {
		menu.IsPopular = req.IsPopular
	}
	menu.UpdatedAt = time.Now()

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"id": menu.ID})
}
