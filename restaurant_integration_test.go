package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/router"
)

// End-to-end walk through the customer and staff flows against the full
// router, middleware included.
func TestRestaurantFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	autoMigrate(db)

	db.Create(&models.AccessSecret{
		Role: models.RoleAdmin, Secret: "bootstrap-secret", UpdatedAt: time.Now(),
	})
	db.Create(&models.Table{TableNumber: "T1", Capacity: 4, Status: models.TableOccupied})

	r := router.SetupRouter(db)

	do := func(method, url, token string, payload interface{}) *httptest.ResponseRecorder {
		var body *bytes.Buffer
		if payload != nil {
			raw, err := json.Marshal(payload)
			assert.NoError(t, err)
			body = bytes.NewBuffer(raw)
		} else {
			body = bytes.NewBuffer(nil)
		}
		req := httptest.NewRequest(method, url, body)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Admin signs up with the bootstrap secret and logs in. Two calls total
	// against the strict limiter on /register and /login.
	w := do(http.MethodPost, "/register", "", map[string]string{
		"name": "Owner", "email": "owner@example.com",
		"password": "secret123", "role": models.RoleAdmin,
		"access_secret": "bootstrap-secret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(http.MethodPost, "/login", "", map[string]string{
		"email": "owner@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	token := loginResp.Data.Token
	assert.NotEmpty(t, token)

	// Admin builds the menu.
	w = do(http.MethodPost, "/admin/menus", token, map[string]interface{}{
		"name": "Paneer Butter Masala", "description": "Rich tomato gravy",
		"price": 280.0, "category": "mains", "is_vegetarian": true, "is_available": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var menuResp struct {
		Data models.Menu `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &menuResp))

	// Customer places a dine-in order, no auth involved.
	w = do(http.MethodPost, "/orders", "", map[string]interface{}{
		"customer_name":    "Meera Nair",
		"customer_phone":   "9876543210",
		"customer_email":   "meera@example.com",
		"fulfillment_type": models.FulfillmentDineIn,
		"table_number":     "T1",
		"payment_method":   models.MethodUPI,
		"items": []map[string]interface{}{
			{"menu_id": menuResp.Data.ID, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var orderResp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderResp))
	orderID := orderResp.Data.ID
	assert.Equal(t, 560.0, orderResp.Data.Subtotal)
	assert.Equal(t, 28.0, orderResp.Data.Tax)
	assert.Equal(t, 0.0, orderResp.Data.DeliveryFee)
	assert.Equal(t, 588.0, orderResp.Data.TotalAmount)
	assert.Equal(t, models.PaymentUnpaid, orderResp.Data.PaymentStatus)

	// Customer pays over UPI and confirms.
	w = do(http.MethodPost, "/payments", "", map[string]interface{}{
		"order_id":       orderID,
		"payment_method": models.MethodUPI,
		"upi_id":         "meera@okhdfcbank",
		"amount":         orderResp.Data.TotalAmount,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var payResp struct {
		Data models.Payment `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payResp))

	w = do(http.MethodPost, fmt.Sprintf("/payments/%d/confirm", payResp.Data.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Kitchen and staff walk the order to completion.
	for _, status := range []string{
		models.StatusPreparing, models.StatusReady, models.StatusServed, models.StatusCompleted,
	} {
		w = do(http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", orderID), token,
			map[string]string{"status": status})
		assert.Equal(t, http.StatusOK, w.Code, "advancing to %s", status)
	}

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, models.StatusCompleted, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	// Completing a dine-in order frees its table.
	var table models.Table
	db.Where("table_number = ?", "T1").First(&table)
	assert.Equal(t, models.TableAvailable, table.Status)

	// The confirmed payment left exactly one transaction.
	w = do(http.MethodGet, "/admin/transactions", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var txnResp struct {
		Data []models.Transaction `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &txnResp))
	assert.Len(t, txnResp.Data, 1)
	assert.Equal(t, order.TotalAmount, txnResp.Data[0].Amount)

	// Dashboard reflects today's takings.
	w = do(http.MethodGet, "/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "revenue_today")

	// A customer token cannot reach staff surfaces.
	w = do(http.MethodGet, "/admin/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
