package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> one snapshot for the admin dashboard: orders by
// status, today's confirmed revenue, table occupancy and low-stock count.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	orderCounts := map[string]int64{}
	for _, status := range []string{
		models.StatusPending, models.StatusPreparing, models.StatusReady,
		models.StatusServed, models.StatusOutForDelivery, models.StatusDelivered,
		models.StatusCompleted, models.StatusCancelled,
	} {
		var n int64
		ac.DB.Model(&models.Order{}).Where("status = ?", status).Count(&n)
		orderCounts[status] = n
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var revenueToday float64
	ac.DB.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ?", models.PaymentStatusSuccess, startOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenueToday)

	tableCounts := map[string]int64{}
	for _, status := range []string{models.TableAvailable, models.TableOccupied, models.TableReserved} {
		var n int64
		ac.DB.Model(&models.Table{}).Where("status = ?", status).Count(&n)
		tableCounts[status] = n
	}

	var lowStock int64
	ac.DB.Model(&models.InventoryItem{}).Where("quantity <= min_stock_level").Count(&lowStock)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"orders":        orderCounts,
		"revenue_today": revenueToday,
		"tables":        tableCounts,
		"low_stock":     lowStock,
	})
}

type popularItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// GetPopularItems -> top menu items by quantity sold, from line snapshots.
func (ac *AdminController) GetPopularItems(c *gin.Context) {
	var items []popularItem
	err := ac.DB.Model(&models.OrderItem{}).
		Select("name, SUM(quantity) AS quantity").
		Group("name").
		Order("quantity DESC").
		Limit(10).
		Scan(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Popular items", items)
}

// GetOrderAnalytics -> per-day order counts and revenue for the last week.
func (ac *AdminController) GetOrderAnalytics(c *gin.Context) {
	type dayRow struct {
		Day     string  `json:"day"`
		Orders  int64   `json:"orders"`
		Revenue float64 `json:"revenue"`
	}

	since := time.Now().AddDate(0, 0, -7)
	var rows []dayRow
	err := ac.DB.Model(&models.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ? AND status <> ?", since, models.StatusCancelled).
		Group("DATE(created_at)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order analytics", rows)
}
