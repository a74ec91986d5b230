package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

// GetAllTransactions -> append-only history written by payment confirmation;
// optional ?method= and ?status= filters.
func (tc *TransactionController) GetAllTransactions(c *gin.Context) {
	q := tc.DB.Order("created_at DESC")
	if method := c.Query("method"); method != "" {
		q = q.Where("payment_method = ?", method)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transaction history", transactions)
}

// GetTransaction
func (tc *TransactionController) GetTransaction(c *gin.Context) {
	var txn models.Transaction
	if err := tc.DB.First(&txn, c.Param("transaction_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transaction detail", txn)
}
