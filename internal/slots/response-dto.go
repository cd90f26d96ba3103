package slots

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRow is one slot as seen by one caller: the effective count
// already excludes the caller's own active holds.
type AvailabilityRow struct {
	SlotID             uuid.UUID `json:"slot_id" gorm:"column:slot_id"`
	StartTime          time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime            time.Time `json:"end_time" gorm:"column:end_time"`
	TotalCapacity      int       `json:"total_capacity" gorm:"column:total_capacity"`
	EffectiveAvailable int       `json:"effective_available" gorm:"column:effective_available"`
	Price              float64   `json:"price" gorm:"column:price"`
}

type CanBookResponse struct {
	CanBook            bool    `json:"can_book"`
	Reason             *string `json:"reason,omitempty"`
	AvailableSlotCount int     `json:"available_slot_count"`
}
