package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Status      Status     `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Visibility  Visibility `json:"visibility" gorm:"type:varchar(20);default:'public'"`

	// Scheduling template, consumed only by the external slot generator.
	// Weekdays is a comma-separated list of time.Weekday values.
	Weekdays        string `json:"weekdays" gorm:"size:32"`
	DailyWindowFrom string `json:"daily_window_from" gorm:"size:5"`
	DailyWindowTo   string `json:"daily_window_to" gorm:"size:5"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsBookable reports whether anonymous callers may reserve against this
// event: it must be active and publicly reachable. The legacy "protected"
// visibility is authorised identically to unlisted.
func (e *Event) IsBookable() bool {
	if e.Status != StatusActive {
		return false
	}
	switch e.Visibility {
	case VisibilityPublic, VisibilityUnlisted, VisibilityProtected:
		return true
	default:
		return false
	}
}

// BookabilityReason explains why an event cannot be booked. Empty when
// bookable.
func (e *Event) BookabilityReason() string {
	if e.Status != StatusActive {
		return "event is not active"
	}
	if !e.IsBookable() {
		return "event is not publicly bookable"
	}
	return ""
}

// BeforeCreate assigns the ID app-side; no database extension is relied on.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// ToResponse converts an Event to its public representation
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Status:      e.Status,
		Visibility:  e.Visibility,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
