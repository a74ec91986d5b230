package models

import "time"

type Menu struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category     string    `gorm:"type:varchar(100);not null;index" json:"category"`
	IsVegetarian bool      `gorm:"not null;default:false" json:"is_vegetarian"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"is_available"`
	IsPopular    *bool     `json:"is_popular,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
