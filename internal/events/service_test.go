package events

import (
	"context"
	"testing"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Event{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{EventCacheTTL: 30 * time.Second},
		Deadline: config.DeadlineConfig{
			Read:  5 * time.Second,
			Write: 10 * time.Second,
		},
	}
}

func TestGetEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a stored event", func(t *testing.T) {
		db := newTestDB(t)
		event := &Event{ID: uuid.New(), Name: "Pottery", Status: StatusActive, Visibility: VisibilityPublic}
		require.NoError(t, db.Create(event).Error)

		svc := NewService(NewRepository(db), testConfig())

		resp, err := svc.GetEvent(ctx, event.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Pottery", resp.Name)
	})

	t.Run("unknown event", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(NewRepository(db), testConfig())

		_, err := svc.GetEvent(ctx, uuid.NewString())
		assert.True(t, apperrors.IsKind(err, apperrors.KindEventNotFound))
	})

	t.Run("malformed id", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(NewRepository(db), testConfig())

		_, err := svc.GetEvent(ctx, "not-a-uuid")
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		db := newTestDB(t)
		event := &Event{ID: uuid.New(), Name: "Pottery", Status: StatusActive, Visibility: VisibilityPublic}
		require.NoError(t, db.Create(event).Error)

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		svc := NewService(NewRepository(db), testConfig())
		svc.SetCacheService(cache.NewService(client))

		first, err := svc.GetEvent(ctx, event.ID.String())
		require.NoError(t, err)

		// Change the row under the cache; the cached copy wins until TTL.
		require.NoError(t, db.Model(&Event{}).Where("id = ?", event.ID).Update("name", "Renamed").Error)

		second, err := svc.GetEvent(ctx, event.ID.String())
		require.NoError(t, err)
		assert.Equal(t, first.Name, second.Name)

		mr.FastForward(time.Minute)

		third, err := svc.GetEvent(ctx, event.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Renamed", third.Name)
	})
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	visible := &Event{ID: uuid.New(), Name: "Visible", Status: StatusActive, Visibility: VisibilityPublic}
	require.NoError(t, db.Create(visible).Error)
	require.NoError(t, db.Create(&Event{ID: uuid.New(), Name: "Draft", Status: StatusDraft, Visibility: VisibilityPublic}).Error)
	require.NoError(t, db.Create(&Event{ID: uuid.New(), Name: "Hidden", Status: StatusActive, Visibility: VisibilityPrivate}).Error)

	svc := NewService(NewRepository(db), testConfig())

	list, total, err := svc.ListEvents(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Visible", list[0].Name)
}

func TestEventBookability(t *testing.T) {
	cases := []struct {
		name       string
		status     Status
		visibility Visibility
		want       bool
	}{
		{"active public", StatusActive, VisibilityPublic, true},
		{"active unlisted", StatusActive, VisibilityUnlisted, true},
		{"active protected legacy", StatusActive, VisibilityProtected, true},
		{"active private", StatusActive, VisibilityPrivate, false},
		{"draft public", StatusDraft, VisibilityPublic, false},
		{"paused public", StatusPaused, VisibilityPublic, false},
		{"cancelled public", StatusCancelled, VisibilityPublic, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &Event{Status: tc.status, Visibility: tc.visibility}
			assert.Equal(t, tc.want, e.IsBookable())
			if tc.want {
				assert.Empty(t, e.BookabilityReason())
			} else {
				assert.NotEmpty(t, e.BookabilityReason())
			}
		})
	}
}
