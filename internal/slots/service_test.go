package slots_test

import (
	"context"
	"testing"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/holds"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/internal/slots"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&events.Event{}, &slots.TimeSlot{}, &holds.SlotHold{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Deadline: config.DeadlineConfig{
			Read:  5 * time.Second,
			Write: 10 * time.Second,
		},
	}
}

func newService(db *gorm.DB) slots.Service {
	return slots.NewService(slots.NewRepository(db), events.NewRepository(db), testConfig())
}

func seedEvent(t *testing.T, db *gorm.DB, status events.Status) *events.Event {
	t.Helper()
	event := &events.Event{
		ID:         uuid.New(),
		Name:       "Test Event",
		Status:     status,
		Visibility: events.VisibilityPublic,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedSlot(t *testing.T, db *gorm.DB, eventID uuid.UUID, capacity, booked int, start time.Time) *slots.TimeSlot {
	t.Helper()
	slot := &slots.TimeSlot{
		ID:            uuid.New(),
		EventID:       eventID,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		TotalCapacity: capacity,
		BookedCount:   booked,
		Status:        slots.SlotStatusAvailable,
		Price:         15,
	}
	require.NoError(t, db.Create(slot).Error)
	return slot
}

func seedHold(t *testing.T, db *gorm.DB, slotID uuid.UUID, sessionID string, quantity int, expiresAt time.Time) {
	t.Helper()
	hold := &holds.SlotHold{
		ID:        uuid.New(),
		SlotID:    slotID,
		SessionID: sessionID,
		Quantity:  quantity,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	require.NoError(t, db.Create(hold).Error)
}

func TestListAvailability(t *testing.T) {
	ctx := context.Background()
	future := time.Now().UTC().Add(24 * time.Hour)

	t.Run("subtracts confirmed bookings and foreign holds", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		slot := seedSlot(t, db, event.ID, 10, 2, future)
		seedHold(t, db, slot.ID, "session-b", 3, future)

		rows, err := newService(db).ListAvailability(ctx, event.ID.String(), "session-a")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, slot.ID, rows[0].SlotID)
		assert.Equal(t, 5, rows[0].EffectiveAvailable)
	})

	t.Run("the caller's own hold is not subtracted", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		slot := seedSlot(t, db, event.ID, 10, 0, future)
		seedHold(t, db, slot.ID, "session-a", 4, future)
		svc := newService(db)

		rows, err := svc.ListAvailability(ctx, event.ID.String(), "session-a")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 10, rows[0].EffectiveAvailable)

		// An anonymous caller sees the hold subtracted.
		rows, err = svc.ListAvailability(ctx, event.ID.String(), "")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 6, rows[0].EffectiveAvailable)
	})

	t.Run("expired holds do not reduce availability", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		slot := seedSlot(t, db, event.ID, 10, 0, future)
		seedHold(t, db, slot.ID, "session-b", 5, time.Now().UTC().Add(-time.Minute))

		rows, err := newService(db).ListAvailability(ctx, event.ID.String(), "session-a")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 10, rows[0].EffectiveAvailable)
	})

	t.Run("fully booked and past slots are omitted", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		seedSlot(t, db, event.ID, 5, 5, future)
		seedSlot(t, db, event.ID, 5, 0, time.Now().UTC().Add(-time.Hour))
		open := seedSlot(t, db, event.ID, 5, 1, future.Add(time.Hour))

		rows, err := newService(db).ListAvailability(ctx, event.ID.String(), "")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, open.ID, rows[0].SlotID)
	})

	t.Run("slots are ordered by start time", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		later := seedSlot(t, db, event.ID, 5, 0, future.Add(2*time.Hour))
		earlier := seedSlot(t, db, event.ID, 5, 0, future)

		rows, err := newService(db).ListAvailability(ctx, event.ID.String(), "")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, earlier.ID, rows[0].SlotID)
		assert.Equal(t, later.ID, rows[1].SlotID)
	})

	t.Run("unknown event is an error", func(t *testing.T) {
		db := newTestDB(t)

		_, err := newService(db).ListAvailability(ctx, uuid.NewString(), "")
		require.Error(t, err)
	})
}

func TestCanBook(t *testing.T) {
	ctx := context.Background()
	future := time.Now().UTC().Add(24 * time.Hour)

	t.Run("bookable event with room", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		seedSlot(t, db, event.ID, 10, 0, future)
		seedSlot(t, db, event.ID, 10, 8, future.Add(time.Hour))

		resp, err := newService(db).CanBook(ctx, event.ID.String(), 4)
		require.NoError(t, err)
		assert.True(t, resp.CanBook)
		assert.Equal(t, 1, resp.AvailableSlotCount)
	})

	t.Run("quantity larger than any slot", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		seedSlot(t, db, event.ID, 5, 2, future)

		resp, err := newService(db).CanBook(ctx, event.ID.String(), 4)
		require.NoError(t, err)
		assert.False(t, resp.CanBook)
		assert.Equal(t, 0, resp.AvailableSlotCount)
	})

	t.Run("holds count regardless of session", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusActive)
		slot := seedSlot(t, db, event.ID, 5, 0, future)
		seedHold(t, db, slot.ID, "session-a", 3, future)

		resp, err := newService(db).CanBook(ctx, event.ID.String(), 3)
		require.NoError(t, err)
		assert.False(t, resp.CanBook)
	})

	t.Run("inactive event reports a reason, not an error", func(t *testing.T) {
		db := newTestDB(t)
		event := seedEvent(t, db, events.StatusDraft)
		seedSlot(t, db, event.ID, 5, 0, future)

		resp, err := newService(db).CanBook(ctx, event.ID.String(), 1)
		require.NoError(t, err)
		assert.False(t, resp.CanBook)
		require.NotNil(t, resp.Reason)
	})

	t.Run("unknown event reports a reason, not an error", func(t *testing.T) {
		db := newTestDB(t)

		resp, err := newService(db).CanBook(ctx, uuid.NewString(), 1)
		require.NoError(t, err)
		assert.False(t, resp.CanBook)
		require.NotNil(t, resp.Reason)
		assert.Equal(t, "event not found", *resp.Reason)
	})
}
