package appointment

import (
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
	// One connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestNotifier(t *testing.T, db *gorm.DB) *notify.Dispatcher {
	t.Helper()
	return notify.NewDispatcher(db, notify.NoopPusher{}, zap.NewNop())
}

// fixture is a booked-out barbershop in miniature: one customer, one
// barber working 09:00-18:00 on the scenario weekday, two offered
// services and one foreign service nobody at the shop performs.
type fixture struct {
	db *gorm.DB

	customerUser models.User
	staffUser    models.User
	staff        models.Staff

	corte   models.Service // 30 min
	barba   models.Service // 45 min
	foreign models.Service // offered by nobody

	day time.Time // scenario date at midnight UTC
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{db: db}

	f.customerUser = models.User{Name: "Laura Méndez", Email: "laura@example.com", Role: models.RoleCliente, Active: true}
	f.staffUser = models.User{Name: "Carlos Ruiz", Email: "carlos@example.com", Role: models.RoleEmpleado, Active: true}
	if err := db.Create(&f.customerUser).Error; err != nil {
		t.Fatalf("seed customer user: %v", err)
	}
	if err := db.Create(&f.staffUser).Error; err != nil {
		t.Fatalf("seed staff user: %v", err)
	}

	f.corte = models.Service{Name: "Corte clásico", DurationMin: 30, Price: 150, Active: true}
	f.barba = models.Service{Name: "Arreglo de barba", DurationMin: 45, Price: 120, Active: true}
	f.foreign = models.Service{Name: "Tinte", DurationMin: 90, Price: 400, Active: true}
	for _, svc := range []*models.Service{&f.corte, &f.barba, &f.foreign} {
		if err := db.Create(svc).Error; err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}

	f.staff = models.Staff{
		UserID:          f.staffUser.ID,
		Active:          true,
		OfferedServices: []models.Service{f.corte, f.barba},
	}
	if err := db.Create(&f.staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	f.day = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	wh := models.WorkingHours{
		StaffID:   f.staff.ID,
		Weekday:   int(f.day.Weekday()),
		StartTime: "09:00",
		EndTime:   "18:00",
		Active:    true,
	}
	if err := db.Create(&wh).Error; err != nil {
		t.Fatalf("seed working hours: %v", err)
	}

	return f
}

// clockAt pins a use case clock before the fixture day so bookings on it
// are always in the future.
func (f *fixture) clockAt(hm string) func() time.Time {
	ts, _ := time.Parse("15:04", hm)
	fixed := time.Date(
		f.day.Year(), f.day.Month(), f.day.Day()-1,
		ts.Hour(), ts.Minute(), 0, 0, time.UTC,
	)
	return func() time.Time { return fixed }
}

func (f *fixture) dateStr() string {
	return f.day.Format("2006-01-02")
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
