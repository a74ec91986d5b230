package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/events"
	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> add a new table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity"`
		Status      string `json:"status"` // optional, default "available"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      models.TableAvailable,
	}
	if table.Capacity == 0 {
		table.Capacity = 2
	}
	if req.Status != "" {
		if !models.KnownTableStatus(req.Status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown table status %q", req.Status))
			return
		}
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.TableUpdated(table)
	events.DashboardUpdated(tc.statusCounts())

	utils.InfoLogger.Printf("New table created: %s (status=%s)", table.TableNumber, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list all tables
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus -> unconditional overwrite. Any recognised status may
// follow any other; the operator is in charge here, not a state machine.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.KnownTableStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown table status %q", body.Status))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	table.UpdatedAt = time.Now()
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.TableUpdated(table)
	events.DashboardUpdated(tc.statusCounts())

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> remove a table
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.DashboardUpdated(tc.statusCounts())

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// GetOrderForTable -> read-side join: the first loaded order for this table
// number whose status is still active. Nothing prevents two active orders on
// one table; the earliest wins here.
func (tc *TableController) GetOrderForTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var order models.Order
	err := tc.DB.Preload("Items").
		Where("table_number = ? AND status IN ?", table.TableNumber, models.ActiveStatuses).
		Order("created_at ASC").
		First(&order).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no active order for this table"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active order for table", order)
}

// statusCounts feeds the dashboard broadcast.
func (tc *TableController) statusCounts() map[string]interface{} {
	var available, occupied, reserved int64

	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableAvailable).Count(&available)
	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableOccupied).Count(&occupied)
	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableReserved).Count(&reserved)

	return map[string]interface{}{
		"available": available,
		"occupied":  occupied,
		"reserved":  reserved,
		"total":     available + occupied + reserved,
	}
}
