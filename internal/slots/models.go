package slots

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusFull      SlotStatus = "full"
	SlotStatusCancelled SlotStatus = "cancelled"
)

type TimeSlot struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	EventID       uuid.UUID  `json:"event_id" gorm:"type:uuid;index;not null"`
	StartTime     time.Time  `json:"start_time" gorm:"not null"`
	EndTime       time.Time  `json:"end_time" gorm:"not null"`
	TotalCapacity int        `json:"total_capacity" gorm:"not null;check:total_capacity > 0"`
	BookedCount   int        `json:"booked_count" gorm:"default:0;check:booked_count >= 0"`
	Status        SlotStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Price         float64    `json:"price" gorm:"not null;check:price >= 0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// AvailableCount is capacity net of confirmed bookings only. Active holds
// are subtracted separately, per caller.
func (s *TimeSlot) AvailableCount() int {
	return s.TotalCapacity - s.BookedCount
}

// IsBookable reports whether the slot itself can accept new reservations.
// The owning event's bookability is checked separately.
func (s *TimeSlot) IsBookable(now time.Time) bool {
	return s.Status == SlotStatusAvailable && s.StartTime.After(now)
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (TimeSlot) TableName() string {
	return "time_slots"
}
