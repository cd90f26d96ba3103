package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/bookings"
	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/holds"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/internal/shared/database"
	"github.com/ParthG2209/Schedlyx/internal/slots"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Schedlyx Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order.
func (s *Seeder) CleanDatabase() error {
	pg := s.db.GetPostgreSQL()

	tables := []interface{}{
		&bookings.BookingAttempt{},
		&bookings.Booking{},
		&holds.SlotHold{},
		&slots.TimeSlot{},
		&events.Event{},
	}
	for _, table := range tables {
		if err := pg.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clean table: %w", err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	pg := s.db.GetPostgreSQL()

	demoEvents := []events.Event{
		{
			ID:              uuid.New(),
			Name:            "Morning Yoga Studio",
			Description:     "Small-group vinyasa classes, mats provided.",
			Status:          events.StatusActive,
			Visibility:      events.VisibilityPublic,
			Weekdays:        "Monday,Wednesday,Friday",
			DailyWindowFrom: "07:00",
			DailyWindowTo:   "11:00",
		},
		{
			ID:              uuid.New(),
			Name:            "Pottery Workshop",
			Description:     "Wheel-throwing for beginners, clay included.",
			Status:          events.StatusActive,
			Visibility:      events.VisibilityUnlisted,
			Weekdays:        "Saturday,Sunday",
			DailyWindowFrom: "10:00",
			DailyWindowTo:   "16:00",
		},
		{
			ID:          uuid.New(),
			Name:        "Winter Concert Series",
			Description: "Not yet published.",
			Status:      events.StatusDraft,
			Visibility:  events.VisibilityPublic,
		},
	}

	for i := range demoEvents {
		if err := pg.Create(&demoEvents[i]).Error; err != nil {
			return fmt.Errorf("failed to seed event %q: %w", demoEvents[i].Name, err)
		}
	}
	fmt.Printf("   seeded %d events\n", len(demoEvents))

	// Two weeks of hourly slots for each active event.
	now := time.Now().UTC()
	slotCount := 0
	for _, ev := range demoEvents {
		if ev.Status != events.StatusActive {
			continue
		}
		for day := 1; day <= 14; day++ {
			for hour := 9; hour < 12; hour++ {
				start := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC).AddDate(0, 0, day)
				slot := slots.TimeSlot{
					ID:            uuid.New(),
					EventID:       ev.ID,
					StartTime:     start,
					EndTime:       start.Add(time.Hour),
					TotalCapacity: 10,
					Status:        slots.SlotStatusAvailable,
					Price:         25.00,
				}
				if err := pg.Create(&slot).Error; err != nil {
					return fmt.Errorf("failed to seed slot: %w", err)
				}
				slotCount++
			}
		}
	}
	fmt.Printf("   seeded %d time slots\n", slotCount)

	return nil
}
