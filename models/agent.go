package models

import (
	"time"

	"gorm.io/gorm"
)

// Agent is a lookup entity: apartments may reference an agent, but agents are
// managed by a separate admin flow.
type Agent struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AgentCode string `gorm:"column:agent_code;uniqueIndex;size:50" json:"agent_code"`
	FullName  string `gorm:"size:255" json:"full_name"`
	Email     string `gorm:"size:150" json:"email"`
	Phone     string `gorm:"size:30" json:"phone"`
	Status    string `gorm:"size:20;default:active" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
