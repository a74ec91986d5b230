package models

import (
	"time"
)

// Transaction records a confirmed payment. Append-only, one per payment.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Reference     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	Order         Order     `gorm:"foreignKey:OrderID" json:"-"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
