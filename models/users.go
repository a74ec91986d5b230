package models

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleKitchen  = "kitchen"
	RoleDelivery = "delivery"
	RoleCustomer = "customer"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255); not null"`
	Email     string `gorm:"type:varchar(255); unique;not null"`
	Password  string `gorm:"type:varchar(255); not null" json:"-"`
	Role      string `gorm:"type:varchar(20); not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
