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

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// CreateFeedback -> public; rating must be 1..5.
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerPhone string `json:"customer_phone"`
		OrderID       *uint  `json:"order_id"`
		Rating        int    `json:"rating" binding:"required"`
		Comment       string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	if req.OrderID != nil {
		var order models.Order
		if err := fc.DB.First(&order, *req.OrderID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("referenced order not found"))
			return
		}
	}

	feedback := models.Feedback{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		OrderID:       req.OrderID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     time.Now(),
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Feedback submitted", feedback)
}

// GetAllFeedback -> staff view, newest first.
func (fc *FeedbackController) GetAllFeedback(c *gin.Context) {
	var feedback []models.Feedback
	if err := fc.DB.Order("created_at DESC").Find(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All feedback", feedback)
}
