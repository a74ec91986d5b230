package models

import "time"

// Inventory adjustment actions.
const (
	InventoryActionAdd    = "add"
	InventoryActionRemove = "remove"
)

type InventoryItem struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Category      string     `gorm:"type:varchar(100);not null;index" json:"category"`
	Quantity      float64    `gorm:"not null;default:0" json:"quantity"`
	Unit          string     `gorm:"type:varchar(20);not null" json:"unit"`
	CostPerUnit   float64    `gorm:"type:decimal(10,2);not null" json:"cost_per_unit"`
	MinStockLevel float64    `gorm:"not null;default:0" json:"min_stock_level"`
	Vendor        string     `gorm:"type:varchar(255)" json:"vendor"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Location      *string    `gorm:"type:varchar(100)" json:"location,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

// LowStock reports whether the item is at or below its minimum level.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinStockLevel
}

// InventoryHistory is the append-only adjustment log. Rows are never updated
// or deleted.
type InventoryHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemID       uint      `gorm:"not null;index" json:"item_id"`
	ItemName     string    `gorm:"type:varchar(255);not null" json:"item_name"`
	Action       string    `gorm:"type:varchar(10);not null" json:"action"`
	PrevQuantity float64   `gorm:"not null" json:"prev_quantity"`
	Delta        float64   `gorm:"not null" json:"delta"`
	Actor        string    `gorm:"type:varchar(255)" json:"actor"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
