package models

import "time"

// StaffAccess is the allow-list of emails authorised for a restricted role
// (admin or delivery). Passing credential auth is not enough for those areas;
// the email must also appear here.
type StaffAccess struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Role      string    `gorm:"type:varchar(20);not null;index:idx_role_email,unique" json:"role"`
	Email     string    `gorm:"type:varchar(255);not null;index:idx_role_email,unique" json:"email"`
	AddedBy   string    `gorm:"type:varchar(255)" json:"added_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// AccessSecret holds the shared secret a user must present to register into
// a restricted role.
type AccessSecret struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Role      string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"role"`
	Secret    string    `gorm:"type:varchar(255);not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
