package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff roles. Mutating apartment lifecycle state (delete/restore, or
// deactivation through update_all) requires RoleSuperAdmin.
const (
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super Admin"
)

type Staff struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StaffCode string `gorm:"column:staff_code;uniqueIndex;size:50" json:"staff_code"`
	FullName  string `gorm:"size:255" json:"full_name"`
	Username  string `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string `gorm:"size:255" json:"-"` // store hashed password, never return in JSON
	Role      string `gorm:"size:50" json:"role"`
	Status    string `gorm:"size:20;default:active" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
