package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/estilobarber/barberia-api/internal/db"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestSweeper(t *testing.T, db *gorm.DB, lead time.Duration) *Sweeper {
	t.Helper()
	notifier := notify.NewDispatcher(db, notify.NoopPusher{}, zap.NewNop())
	return NewSweeper(db, nil, notifier, zap.NewNop(), lead, time.Minute)
}

func seedCitaAt(t *testing.T, db *gorm.DB, start time.Time, status string) models.Appointment {
	t.Helper()

	ap := models.Appointment{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    status,
	}
	if err := db.Create(&ap).Error; err != nil {
		t.Fatalf("seed cita: %v", err)
	}
	return ap
}

func reloadReminder(t *testing.T, db *gorm.DB, id uint) *time.Time {
	t.Helper()
	var ap models.Appointment
	if err := db.First(&ap, id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	return ap.ReminderSentAt
}

func TestSweepMarksDueCitas(t *testing.T) {
	db := newTestDB(t)
	s := newTestSweeper(t, db, 2*time.Hour)

	due := seedCitaAt(t, db, time.Now().Add(time.Hour), "confirmada")
	farAway := seedCitaAt(t, db, time.Now().Add(48*time.Hour), "confirmada")
	cancelled := seedCitaAt(t, db, time.Now().Add(time.Hour), "cancelada")

	s.Sweep(context.Background())

	if reloadReminder(t, db, due.ID) == nil {
		t.Error("due cita not marked")
	}
	if reloadReminder(t, db, farAway.ID) != nil {
		t.Error("cita outside the lead window was marked")
	}
	if reloadReminder(t, db, cancelled.ID) != nil {
		t.Error("cancelled cita was marked")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	s := newTestSweeper(t, db, 2*time.Hour)

	due := seedCitaAt(t, db, time.Now().Add(time.Hour), "pendiente")

	s.Sweep(context.Background())
	first := reloadReminder(t, db, due.ID)
	if first == nil {
		t.Fatal("cita not marked on first sweep")
	}

	s.Sweep(context.Background())
	second := reloadReminder(t, db, due.ID)
	if second == nil || !second.Equal(*first) {
		t.Errorf("second sweep changed the mark: %v -> %v", first, second)
	}
}

func TestSweepSkipsStartedCitas(t *testing.T) {
	db := newTestDB(t)
	s := newTestSweeper(t, db, 2*time.Hour)

	// Already past its start: reminding now would be noise.
	past := seedCitaAt(t, db, time.Now().Add(-10*time.Minute), "confirmada")

	s.Sweep(context.Background())

	if reloadReminder(t, db, past.ID) != nil {
		t.Error("cita already started was marked")
	}
}

func TestAcquireWithoutRedis(t *testing.T) {
	db := newTestDB(t)
	s := newTestSweeper(t, db, time.Hour)

	// No redis configured: the database flag alone carries idempotency.
	if !s.acquire(context.Background(), 1) {
		t.Error("acquire must succeed when redis is not configured")
	}
}
