package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/estilobarber/barberia-api/internal/db"
	"github.com/estilobarber/barberia-api/internal/models"
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

func seedStaff(t *testing.T, db *gorm.DB, name string, active bool, services ...models.Service) models.Staff {
	t.Helper()

	user := models.User{Name: name, Email: name + "@example.com", Role: models.RoleEmpleado, Active: active}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	staff := models.Staff{UserID: user.ID, Active: active, OfferedServices: services}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return staff
}

func TestListActiveServices(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)

	for _, svc := range []models.Service{
		{Name: "Corte clásico", Category: "corte", DurationMin: 30, Price: 150, Active: true},
		{Name: "Arreglo de barba", Category: "barba", DurationMin: 45, Price: 120, Active: true},
		{Name: "Permanente", Category: "quimicos", DurationMin: 120, Price: 600, Active: false},
	} {
		if err := db.Create(&svc).Error; err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}

	services, err := repo.ListActiveServices(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(services) != 2 {
		t.Fatalf("got %d services, want 2 (inactive hidden)", len(services))
	}
	// Ordered by category, then name.
	if services[0].Name != "Arreglo de barba" {
		t.Errorf("first service = %s, want Arreglo de barba", services[0].Name)
	}
}

func TestListStaffOfferingAllRequiresSuperset(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)

	corte := models.Service{Name: "Corte", DurationMin: 30, Price: 150, Active: true}
	barba := models.Service{Name: "Barba", DurationMin: 45, Price: 120, Active: true}
	for _, svc := range []*models.Service{&corte, &barba} {
		if err := db.Create(svc).Error; err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}

	both := seedStaff(t, db, "ana", true, corte, barba)
	onlyCorte := seedStaff(t, db, "beto", true, corte)

	staff, err := repo.ListStaffOfferingAll(context.Background(), []uint{corte.ID, barba.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(staff) != 1 || staff[0].ID != both.ID {
		t.Fatalf("got %+v, want only the staff offering both services", staffIDsOf(staff))
	}

	// A single-service query matches both barbers.
	staff, err = repo.ListStaffOfferingAll(context.Background(), []uint{corte.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("got %v, want both barbers", staffIDsOf(staff))
	}
	_ = onlyCorte
}

func TestListStaffOfferingAllDuplicateIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)

	corte := models.Service{Name: "Corte", DurationMin: 30, Price: 150, Active: true}
	if err := db.Create(&corte).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	seedStaff(t, db, "ana", true, corte)

	// Repeating a service id must not raise the HAVING threshold.
	staff, err := repo.ListStaffOfferingAll(context.Background(), []uint{corte.ID, corte.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(staff) != 1 {
		t.Fatalf("got %d staff, want 1", len(staff))
	}
}

func TestListStaffOfferingAllHidesInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogGormRepository(db)

	corte := models.Service{Name: "Corte", DurationMin: 30, Price: 150, Active: true}
	if err := db.Create(&corte).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	seedStaff(t, db, "retirado", false, corte)

	staff, err := repo.ListStaffOfferingAll(context.Background(), []uint{corte.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(staff) != 0 {
		t.Fatalf("got %v, inactive staff must be hidden", staffIDsOf(staff))
	}
}

func TestInactiveFlagSurvivesInsert(t *testing.T) {
	db := newTestDB(t)

	svc := models.Service{Name: "Permanente", DurationMin: 120, Price: 600, Active: false}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	staff := seedStaff(t, db, "retirado", false)

	var gotSvc models.Service
	if err := db.First(&gotSvc, svc.ID).Error; err != nil {
		t.Fatalf("reload service: %v", err)
	}
	if gotSvc.Active {
		t.Error("service created inactive was stored active")
	}

	var gotStaff models.Staff
	if err := db.Preload("User").First(&gotStaff, staff.ID).Error; err != nil {
		t.Fatalf("reload staff: %v", err)
	}
	if gotStaff.Active || gotStaff.User.Active {
		t.Errorf("staff created inactive was stored active (staff=%v user=%v)",
			gotStaff.Active, gotStaff.User.Active)
	}
}

func staffIDsOf(staff []models.Staff) []uint {
	out := make([]uint, 0, len(staff))
	for _, s := range staff {
		out = append(out, s.ID)
	}
	return out
}
