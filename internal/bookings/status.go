package bookings

// Statuses for booking_attempts rows. Abandoned is reserved for offline
// backfills; the confirm path only writes success and failed.
const (
	AttemptStatusSuccess   = "success"
	AttemptStatusFailed    = "failed"
	AttemptStatusAbandoned = "abandoned"
)
