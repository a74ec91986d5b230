package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/cart"
	"github.com/tasteline/restaurant-app/events"
	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type orderItemReq struct {
	MenuID   uint `json:"menu_id"`
	Quantity int  `json:"quantity"`
}

type createOrderReq struct {
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerEmail   string         `json:"customer_email"`
	FulfillmentType string         `json:"fulfillment_type"`
	TableNumber     string         `json:"table_number"`
	DeliveryAddress string         `json:"delivery_address"`
	PaymentMethod   string         `json:"payment_method"`
	PaymentDone     bool           `json:"payment_done"`
	Items           []orderItemReq `json:"items"`
}

// validate applies the checkout rules in order, stopping at the first
// failure.
func (r *createOrderReq) validate() error {
	if r.CustomerName == "" || r.CustomerPhone == "" || r.CustomerEmail == "" {
		return errors.New("name, phone and email are required")
	}
	if !phonePattern.MatchString(r.CustomerPhone) {
		return errors.New("phone number must be exactly 10 digits")
	}
	switch r.FulfillmentType {
	case models.FulfillmentDelivery:
		if r.DeliveryAddress == "" {
			return errors.New("delivery address is required for delivery orders")
		}
	case models.FulfillmentDineIn:
		if r.TableNumber == "" {
			return errors.New("table number is required for dine-in orders")
		}
	case models.FulfillmentTakeaway:
	default:
		return errors.New("fulfillment type must be dine-in, takeaway or delivery")
	}
	if len(r.Items) == 0 {
		return errors.New("cart is empty")
	}
	for _, item := range r.Items {
		if item.Quantity < 1 {
			return errors.New("item quantity must be at least 1")
		}
	}
	return nil
}

// CreateOrder -> checkout. Snapshots menu name/price per line, computes
// totals server-side and writes the order atomically with status 'pending'.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Rebuild the basket from the live menu so prices cannot be spoofed and
	// each line carries a snapshot, not a reference.
	basket := cart.New()
	for _, item := range req.Items {
		var menu models.Menu
		if err := oc.DB.First(&menu, item.MenuID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("menu item %d not found", item.MenuID))
			return
		}
		if !menu.IsAvailable {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("%s is currently unavailable", menu.Name))
			return
		}
		basket.Add(cart.Item{ID: menu.ID, Name: menu.Name, Price: menu.Price})
		basket.UpdateQuantity(menu.ID, item.Quantity)
	}
	if basket.Len() == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	totals := basket.Totals(req.FulfillmentType)

	paymentStatus := models.PaymentUnpaid
	if req.PaymentDone {
		// The online confirmation flow already ran on the ordering screen.
		paymentStatus = models.PaymentPaid
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.MethodCash
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		FulfillmentType: req.FulfillmentType,
		TableNumber:     req.TableNumber,
		DeliveryAddress: req.DeliveryAddress,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		DeliveryFee:     totals.DeliveryFee,
		TotalAmount:     totals.Total,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   paymentStatus,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range basket.Lines() {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				MenuID:    line.Item.ID,
				Name:      line.Item.Name,
				Price:     line.Item.Price,
				Quantity:  line.Quantity,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created (%s, %.2f, %d items)",
		order.ID, order.FulfillmentType, order.TotalAmount, len(order.Items))
	events.OrderCreated(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> list orders with items, optionally filtered by status.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	q := oc.DB.Preload("Items")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetMyOrders -> customer-facing order history, looked up by phone number.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("phone is required"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Where("customer_phone = ?", phone).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", orders)
}

// UpdateOrderStatus -> staff screens advance the order lifecycle. Membership
// in the canonical set is checked; transition order is not, matching the
// behavior of the screens this replaces.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.KnownStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown status %q", body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Completing a dine-in order frees its table, but only when the table is
	// actually marked occupied; table state is otherwise operator-driven.
	if body.Status == models.StatusCompleted && order.FulfillmentType == models.FulfillmentDineIn {
		oc.releaseTable(order.TableNumber)
	}

	role, _ := c.Get("role")
	utils.InfoLogger.Printf("Order %d status -> %s (by %v)", order.ID, order.Status, role)
	events.OrderUpdated(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{
		"order":         order,
		"next_statuses": models.NextStatuses(order.Status, order.FulfillmentType),
	})
}

func (oc *OrderController) releaseTable(tableNumber string) {
	if tableNumber == "" {
		return
	}
	var table models.Table
	if err := oc.DB.Where("table_number = ?", tableNumber).First(&table).Error; err != nil {
		return
	}
	if table.Status != models.TableOccupied {
		return
	}
	table.Status = models.TableAvailable
	table.UpdatedAt = time.Now()
	if err := oc.DB.Save(&table).Error; err != nil {
		utils.ErrorLogger.Printf("Error releasing table %s: %v", tableNumber, err)
		return
	}
	events.TableUpdated(table)
}

// DeleteOrder -> admin only; not part of the normal flow.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oc.DB.Select("Items").Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}
