package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the partial indexes the hot reservation paths
// depend on. AutoMigrate cannot express partial indexes, so they are applied
// with raw SQL after the schema migration.
func MigrateConstraints(db *gorm.DB) error {
	// Active holds per slot, filtered by expiry in every query
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slot_holds_slot_active
		ON slot_holds (slot_id, expires_at)
		WHERE is_active = true;
	`).Error
	if err != nil {
		return err
	}

	// Active holds per session (per-session uniqueness lookup)
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slot_holds_session_active
		ON slot_holds (session_id, expires_at)
		WHERE is_active = true;
	`).Error
	if err != nil {
		return err
	}

	// Bookable slots per event, ordered by start time. The booking
	// reference's unique index comes from the model tag via AutoMigrate.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_time_slots_event_available
		ON time_slots (event_id, start_time)
		WHERE status = 'available';
	`).Error
	if err != nil {
		return err
	}

	return nil
}
