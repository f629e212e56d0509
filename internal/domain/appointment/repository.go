package appointment

import (
	"context"
	"time"

	"github.com/estilobarber/barberia-api/internal/models"
)

// BookingCommand is everything the repository needs to commit a booking
// atomically. The overlap re-check and all inserts happen inside one
// transaction; on conflict nothing is written.
type BookingCommand struct {
	CustomerUserID uint
	Appointment    *models.Appointment
}

type Repository interface {
	// -------- Staff / catalog reads --------
	GetStaff(
		ctx context.Context,
		staffID uint,
	) (*models.Staff, error)

	// GetOfferedServices returns the subset of serviceIDs the staff member
	// actually offers, with current durations and prices.
	GetOfferedServices(
		ctx context.Context,
		staffID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	ListWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) ([]models.WorkingHours, error)

	ListAbsences(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Absence, error)

	// -------- Appointments --------
	ListBlockingAppointments(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// CreateBooking resolves the customer, re-checks the slot under a row
	// lock and persists appointment + line items + payment, all-or-nothing.
	CreateBooking(
		ctx context.Context,
		cmd BookingCommand,
	) error

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentForCustomerUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SetCalendarEventID stores the external calendar reference without
	// touching the rest of the row.
	SetCalendarEventID(
		ctx context.Context,
		appointmentID uint,
		eventID string,
	) error

	// Reschedule moves an appointment after an in-transaction overlap
	// re-check that ignores the appointment itself.
	Reschedule(
		ctx context.Context,
		ap *models.Appointment,
		start time.Time,
		end time.Time,
	) error

	ListForCustomerUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Payments --------
	GetPayment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	// -------- Reporting --------
	CountByStatus(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (map[string]int64, error)

	RevenueForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (float64, error)
}
