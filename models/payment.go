package models

import (
	"time"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment methods. "upi" covers both the scan-QR and enter-UPI-ID entry
// modes; neither involves a gateway call.
const (
	MethodCash = "cash"
	MethodUPI  = "upi"
	MethodCard = "card"
)

// Payment represents a payment attempt against an order. Confirmation is
// self-reported by the customer; there is no gateway verification.
type Payment struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	OrderID       uint       `json:"order_id" gorm:"not null;index"`
	Order         Order      `json:"-" gorm:"foreignKey:OrderID"`
	Amount        float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(20);not null;default:'cash'"`
	UPIID         string     `json:"upi_id,omitempty" gorm:"type:varchar(255)"`
	ReferenceID   string     `json:"reference_id" gorm:"type:varchar(64)"`
	PaymentTime   *time.Time `json:"payment_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"not null"`
}
