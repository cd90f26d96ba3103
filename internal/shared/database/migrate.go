package database

import (
	"github.com/ParthG2209/Schedlyx/internal/bookings"
	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/holds"
	"github.com/ParthG2209/Schedlyx/internal/slots"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&events.Event{},
		&slots.TimeSlot{},
		&holds.SlotHold{},
		&bookings.Booking{},
		&bookings.BookingAttempt{},
	)
}
