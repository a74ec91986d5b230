package models

import (
	"time"
)

type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string    `gorm:"type:varchar(20)" json:"customer_phone"`
	OrderID       *uint     `gorm:"index" json:"order_id,omitempty"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
