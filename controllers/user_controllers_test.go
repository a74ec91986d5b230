package controllers_test

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

	"github.com/tasteline/restaurant-app/controllers"
	"github.com/tasteline/restaurant-app/models"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.StaffAccess{}, &models.AccessSecret{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)
	return r
}

func postAuth(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginCustomer(t *testing.T) {
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	w := postAuth(t, r, "/register", map[string]string{
		"name": "Meera Nair", "email": "Meera@Example.com",
		"password": "secret123", "role": models.RoleCustomer,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// email is lowercased on the way in
	w = postAuth(t, r, "/login", map[string]string{
		"email": "meera@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token    string `json:"token"`
			UserRole string `json:"user_role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, models.RoleCustomer, resp.Data.UserRole)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	postAuth(t, r, "/register", map[string]string{
		"name": "Meera Nair", "email": "meera@example.com",
		"password": "secret123", "role": models.RoleCustomer,
	})

	w := postAuth(t, r, "/login", map[string]string{
		"email": "meera@example.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRestrictedRegistrationNeedsAccessSecret(t *testing.T) {
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)
	db.Create(&models.AccessSecret{Role: models.RoleAdmin, Secret: "open-sesame"})

	// wrong secret
	w := postAuth(t, r, "/register", map[string]string{
		"name": "Dev Patel", "email": "dev@example.com",
		"password": "secret123", "role": models.RoleAdmin, "access_secret": "guess",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// right secret registers and enrolls on the allow-list
	w = postAuth(t, r, "/register", map[string]string{
		"name": "Dev Patel", "email": "dev@example.com",
		"password": "secret123", "role": models.RoleAdmin, "access_secret": "open-sesame",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var access models.StaffAccess
	err := db.Where("role = ? AND email = ?", models.RoleAdmin, "dev@example.com").First(&access).Error
	assert.NoError(t, err)
	assert.Equal(t, "self-registration", access.AddedBy)
}

func TestRestrictedRegistrationClosedWithoutSecretRow(t *testing.T) {
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	w := postAuth(t, r, "/register", map[string]string{
		"name": "Dev Patel", "email": "dev@example.com",
		"password": "secret123", "role": models.RoleDelivery, "access_secret": "anything",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminLoginChecksAllowList(t *testing.T) {
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)
	db.Create(&models.AccessSecret{Role: models.RoleAdmin, Secret: "open-sesame"})

	postAuth(t, r, "/register", map[string]string{
		"name": "Dev Patel", "email": "dev@example.com",
		"password": "secret123", "role": models.RoleAdmin, "access_secret": "open-sesame",
	})

	// pulled off the allow-list: credentials alone no longer get a token
	db.Where("role = ? AND email = ?", models.RoleAdmin, "dev@example.com").
		Delete(&models.StaffAccess{})

	w := postAuth(t, r, "/login", map[string]string{
		"email": "dev@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not authorised for admin access")

	// re-enrolled by an admin, login works again
	db.Create(&models.StaffAccess{
		Role: models.RoleAdmin, Email: "dev@example.com",
		AddedBy: "owner@example.com", CreatedAt: time.Now(),
	})
	w = postAuth(t, r, "/login", map[string]string{
		"email": "dev@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	w := postAuth(t, r, "/register", map[string]string{
		"name": "X", "email": "x@example.com",
		"password": "secret123", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
