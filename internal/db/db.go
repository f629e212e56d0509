package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/estilobarber/barberia-api/internal/config"
	"github.com/estilobarber/barberia-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := InstallOverlapConstraint(db); err != nil {
		log.Fatalf("failed to install overlap constraint: %v", err)
	}

	return db
}

// start_time and end_time are timestamptz columns, so the range
// expression must be tstzrange.
const overlapConstraintDDL = `
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'cita_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT cita_no_overlap
                EXCLUDE USING gist (
                    staff_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                )
                WHERE (status <> 'cancelada');
            END IF;
        END
        $$;
    `

// InstallOverlapConstraint adds the exclusion backstop: even if two
// bookings race past the row lock, the database rejects the second
// non-cancelled appointment on the same staff/time range.
func InstallOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(overlapConstraintDDL).Error
}

// Migrate runs the schema migrations. Split out so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Staff{},
		&models.WorkingHours{},
		&models.Absence{},
		&models.Customer{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Payment{},
		&models.Notification{},
		&models.DeviceToken{},
	)
}
