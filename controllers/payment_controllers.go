package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/services"
	"github.com/tasteline/restaurant-app/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Service: services.NewPaymentService(db)}
}

// CreatePayment -> opens a pending payment for an order. For UPI, the ID
// entered on the pay screen is format-checked here; the scan-QR mode submits
// without one.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var body struct {
		OrderID       uint    `json:"order_id" binding:"required"`
		PaymentMethod string  `json:"payment_method" binding:"required"` // cash, upi, card
		UPIID         string  `json:"upi_id"`
		Amount        float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.PaymentMethod {
	case models.MethodCash, models.MethodUPI, models.MethodCard:
	default:
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown payment method %q", body.PaymentMethod))
		return
	}

	payment, err := pc.Service.Open(body.OrderID, body.PaymentMethod, body.UPIID, body.Amount)
	if err != nil {
		code := http.StatusBadRequest
		if err.Error() == "order not found" {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment created", payment)
}

// ConfirmPayment -> the customer's "I've paid" acknowledgment. Marks the
// payment success, the order paid, and appends a transaction.
func (pc *PaymentController) ConfirmPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("payment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment id"))
		return
	}

	payment, err := pc.Service.Confirm(uint(id))
	if err != nil {
		code := http.StatusBadRequest
		if err.Error() == "payment not found" || err.Error() == "order not found" {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment confirmed", payment)
}

// ValidateUPI -> lets the pay screen check an entered UPI ID before showing
// the confirm button.
func (pc *PaymentController) ValidateUPI(c *gin.Context) {
	var body struct {
		UPIID string `json:"upi_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !services.ValidateUPIID(body.UPIID) {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidUPIID)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "UPI ID is valid", gin.H{"upi_id": body.UPIID})
}

// GetAllPayments -> staff view
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	var payments []models.Payment
	if err := pc.DB.Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All payments", payments)
}

// GetPayment
func (pc *PaymentController) GetPayment(c *gin.Context) {
	var payment models.Payment
	if err := pc.DB.First(&payment, c.Param("payment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}
