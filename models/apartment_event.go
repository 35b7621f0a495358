package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApartmentEvent is the append-only audit trail for apartment mutations.
// One row per create/update_all/delete/restore, written in the same
// transaction as the mutation itself. Payload holds a JSON snapshot of the
// fields the action touched.
type ApartmentEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ApartmentCode string         `gorm:"column:apartment_code;index;size:100" json:"apartment_code"`
	Action        string         `gorm:"size:30" json:"action"`
	ActorID       string         `gorm:"column:actor_id;size:50" json:"actor_id"`
	Payload       datatypes.JSON `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}
