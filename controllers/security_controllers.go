package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

// SecurityController manages the allow-lists and shared secrets that gate
// the admin and delivery areas.
type SecurityController struct {
	DB *gorm.DB
}

func NewSecurityController(db *gorm.DB) *SecurityController {
	return &SecurityController{DB: db}
}

// ListAccess -> allow-list entries, optionally filtered by role.
func (sc *SecurityController) ListAccess(c *gin.Context) {
	q := sc.DB.Order("role, email")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var entries []models.StaffAccess
	if err := q.Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Allow-list entries", entries)
}

// AddAccess -> authorise an email for a restricted role.
func (sc *SecurityController) AddAccess(c *gin.Context) {
	var req struct {
		Role  string `json:"role" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !restrictedRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role is not allow-list gated"))
		return
	}

	entry := models.StaffAccess{
		Role:      req.Role,
		Email:     strings.ToLower(req.Email),
		AddedBy:   sc.callerEmail(c),
		CreatedAt: time.Now(),
	}
	if err := sc.DB.Create(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("%s added to %s allow-list by %s", entry.Email, entry.Role, entry.AddedBy)
	utils.RespondJSON(c, http.StatusCreated, "Allow-list entry added", entry)
}

// RemoveAccess -> revoke an email's authorisation.
func (sc *SecurityController) RemoveAccess(c *gin.Context) {
	var entry models.StaffAccess
	if err := sc.DB.First(&entry, c.Param("entry_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := sc.DB.Delete(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("%s removed from %s allow-list", entry.Email, entry.Role)
	utils.RespondJSON(c, http.StatusOK, "Allow-list entry removed", gin.H{"id": entry.ID})
}

// RotateSecret -> replace the shared registration secret for a role.
func (sc *SecurityController) RotateSecret(c *gin.Context) {
	var req struct {
		Role   string `json:"role" binding:"required"`
		Secret string `json:"secret" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !restrictedRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role is not allow-list gated"))
		return
	}

	var secret models.AccessSecret
	err := sc.DB.Where("role = ?", req.Role).First(&secret).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		secret = models.AccessSecret{Role: req.Role}
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	secret.Secret = req.Secret
	secret.UpdatedAt = time.Now()
	if err := sc.DB.Save(&secret).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Access secret rotated for role %s", req.Role)
	utils.RespondJSON(c, http.StatusOK, "Access secret updated", gin.H{"role": req.Role})
}

func (sc *SecurityController) callerEmail(c *gin.Context) string {
	userID, exists := c.Get("user_id")
	if !exists {
		return "unknown"
	}
	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return "unknown"
	}
	return user.Email
}
