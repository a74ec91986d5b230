package models

import (
	"time"
)

// Fulfillment types determine required checkout fields and the delivery fee.
const (
	FulfillmentDineIn   = "dine-in"
	FulfillmentTakeaway = "takeaway"
	FulfillmentDelivery = "delivery"
)

// Canonical order statuses. The per-screen vocabulary of the old frontend
// ("Ready for Delivery", "Out for Delivery", ...) collapses to this set.
const (
	StatusPending        = "pending"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusServed         = "served"
	StatusOutForDelivery = "out-for-delivery"
	StatusDelivered      = "delivered"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	CustomerName    string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"type:varchar(20);not null;index" json:"customer_phone"`
	CustomerEmail   string      `gorm:"type:varchar(255);not null" json:"customer_email"`
	FulfillmentType string      `gorm:"type:varchar(20);not null" json:"fulfillment_type"`
	TableNumber     string      `gorm:"type:varchar(50)" json:"table_number,omitempty"`
	DeliveryAddress string      `gorm:"type:text" json:"delivery_address,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal        float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax             float64     `gorm:"type:decimal(10,2);not null" json:"tax"`
	DeliveryFee     float64     `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	TotalAmount     float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod   string      `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus   string      `gorm:"type:varchar(10);not null;default:'unpaid'" json:"payment_status"`
	Status          string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

// ActiveStatuses are the states in which an order still occupies a table.
var ActiveStatuses = []string{StatusPending, StatusPreparing, StatusReady, StatusServed}

// KnownStatus reports whether s belongs to the canonical status set.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusServed,
		StatusOutForDelivery, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether no further transition is expected from s.
func TerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCompleted || s == StatusCancelled
}

// NextStatuses returns the advance options the staff screens render for an
// order. This drives buttons only; the update endpoint deliberately accepts
// any canonical status so that the data layer stays as permissive as the
// system it replaces.
func NextStatuses(status, fulfillment string) []string {
	if TerminalStatus(status) {
		return nil
	}
	var next []string
	switch status {
	case StatusPending:
		next = []string{StatusPreparing}
	case StatusPreparing:
		next = []string{StatusReady}
	case StatusReady:
		if fulfillment == FulfillmentDelivery {
			next = []string{StatusOutForDelivery}
		} else {
			next = []string{StatusServed}
		}
	case StatusServed:
		next = []string{StatusCompleted}
	case StatusOutForDelivery:
		next = []string{StatusDelivered}
	}
	return append(next, StatusCancelled)
}
