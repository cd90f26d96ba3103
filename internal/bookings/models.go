package bookings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a confirmed reservation. Rows are immutable once written.
type Booking struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	BookingRef        string     `json:"booking_reference" gorm:"size:8;not null;uniqueIndex:idx_bookings_reference"`
	SlotID            uuid.UUID  `json:"slot_id" gorm:"type:uuid;index;not null"`
	EventID           uuid.UUID  `json:"event_id" gorm:"type:uuid;index;not null"`
	HoldID            uuid.UUID  `json:"hold_id" gorm:"type:uuid;not null"`
	SessionID         string     `json:"session_id" gorm:"size:128;not null"`
	UserID            *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid"`
	AttendeeFirstName string     `json:"attendee_first_name" gorm:"size:100;not null"`
	AttendeeLastName  string     `json:"attendee_last_name" gorm:"size:100;not null"`
	AttendeeEmail     string     `json:"attendee_email" gorm:"size:254;not null"`
	AttendeePhone     string     `json:"attendee_phone,omitempty" gorm:"size:32"`
	Notes             string     `json:"notes,omitempty" gorm:"size:1000"`
	Quantity          int        `json:"quantity" gorm:"not null;check:quantity > 0"`

	// Denormalised slot schedule, so a booking reads back without a join
	// even after the slot is edited.
	SlotDate string `json:"slot_date" gorm:"size:10;not null"`
	SlotTime string `json:"slot_time" gorm:"size:5;not null"`

	ConfirmedAt time.Time `json:"confirmed_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

// Attendee carries the validated attendee details into a confirmation.
type Attendee struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     string
}

// BookingAttempt is the append-only audit trail of confirmation attempts,
// written for failures as well as successes. Never updated or deleted.
type BookingAttempt struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	HoldID        uuid.UUID  `json:"hold_id" gorm:"type:uuid;index;not null"`
	SlotID        *uuid.UUID `json:"slot_id,omitempty" gorm:"type:uuid;index"`
	EventID       *uuid.UUID `json:"event_id,omitempty" gorm:"type:uuid;index"`
	SessionID     string     `json:"session_id" gorm:"size:128;not null"`
	UserID        *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid"`
	Email         string     `json:"email" gorm:"size:254"`
	Status        string     `json:"status" gorm:"size:16;not null"`
	FailureReason string     `json:"failure_reason,omitempty" gorm:"size:500"`
	BookingID     *uuid.UUID `json:"booking_id,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (a *BookingAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (BookingAttempt) TableName() string {
	return "booking_attempts"
}

func (b *Booking) ToResponse() *BookingResponse {
	return &BookingResponse{
		BookingID:         b.ID.String(),
		BookingRef:        b.BookingRef,
		SlotID:            b.SlotID.String(),
		EventID:           b.EventID.String(),
		AttendeeFirstName: b.AttendeeFirstName,
		AttendeeLastName:  b.AttendeeLastName,
		AttendeeEmail:     b.AttendeeEmail,
		AttendeePhone:     b.AttendeePhone,
		Notes:             b.Notes,
		Quantity:          b.Quantity,
		SlotDate:          b.SlotDate,
		SlotTime:          b.SlotTime,
		ConfirmedAt:       b.ConfirmedAt,
	}
}
