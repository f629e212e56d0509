package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Staff / catalog reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("empleado_not_found", "Empleado no encontrado.")
		}
		return nil, err
	}

	if !staff.Active || !staff.User.Active {
		return nil, httperr.NotFoundErr("empleado_not_found", "Empleado no disponible.")
	}

	return &staff, nil
}

func (r *AppointmentGormRepository) GetOfferedServices(
	ctx context.Context,
	staffID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Joins("JOIN staff_services ss ON ss.service_id = services.id").
		Where("ss.staff_id = ? AND services.id IN ? AND services.active = ?",
			staffID, serviceIDs, true).
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	staffID uint,
	weekday int,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ? AND active = ?", staffID, weekday, true).
		Order("start_time ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *AppointmentGormRepository) ListAbsences(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Absence, error) {

	var absences []models.Absence
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID, end, start,
		).
		Find(&absences).Error; err != nil {
		return nil, err
	}

	return absences, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, domain.BlockingStatuses(), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CreateBooking(
	ctx context.Context,
	cmd domain.BookingCommand,
) error {

	ap := cmd.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		customer, err := getOrCreateCustomer(tx, cmd.CustomerUserID)
		if err != nil {
			return err
		}
		ap.CustomerID = customer.ID

		if err := assertNoTimeConflict(tx, ap.StaffID, ap.StartTime, ap.EndTime, 0); err != nil {
			return err
		}

		// Creates the appointment graph: line items and payment ride along.
		return tx.Create(ap).Error
	})

	return httperr.TranslateDB(err, "horario_ocupado", "El horario ya no está disponible.")
}

func getOrCreateCustomer(tx *gorm.DB, userID uint) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("user_id = ?", userID).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{UserID: userID}
	if err := tx.Create(&customer).Error; err != nil {
		// Lost a race against another first booking of the same user.
		if httperr.IsUniqueViolation(err) {
			if ferr := tx.Where("user_id = ?", userID).First(&customer).Error; ferr == nil {
				return &customer, nil
			}
		}
		return nil, err
	}

	return &customer, nil
}

// assertNoTimeConflict is the commit-time re-check. On postgres the rows are
// locked FOR UPDATE so two concurrent bookings serialize; sqlite (tests)
// has no row locks and relies on its single-writer model.
func assertNoTimeConflict(tx *gorm.DB, staffID uint, start, end time.Time, excludeID uint) error {
	q := tx.Model(&models.Appointment{})
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	q = q.Where(
		"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
		staffID, domain.BlockingStatuses(), end, start,
	)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.Conflict("horario_ocupado", "El horario ya no está disponible.")
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Staff.User").
		Preload("Services.Service").
		Preload("Payment").
		First(&ap, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("cita_not_found", "Cita no encontrada.")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForCustomerUser(
	ctx context.Context,
	appointmentID uint,
	userID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where("appointments.id = ? AND customers.user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("cita_not_found", "Cita no encontrada.")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// Appointments arrive here with their associations preloaded; saving
	// those back would upsert customer, staff and service rows.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) SetCalendarEventID(
	ctx context.Context,
	appointmentID uint,
	eventID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("calendar_event_id", eventID).Error
}

func (r *AppointmentGormRepository) Reschedule(
	ctx context.Context,
	ap *models.Appointment,
	start time.Time,
	end time.Time,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoTimeConflict(tx, ap.StaffID, start, end, ap.ID); err != nil {
			return err
		}

		ap.StartTime = start
		ap.EndTime = end
		return tx.Omit(clause.Associations).Save(ap).Error
	})

	return httperr.TranslateDB(err, "horario_ocupado", "El horario ya no está disponible.")
}

func (r *AppointmentGormRepository) ListForCustomerUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Staff.User").
		Preload("Services.Service").
		Preload("Payment").
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where("customers.user_id = ?", userID).
		Order("appointments.start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Services.Service").
		Preload("Payment").
		Where("start_time >= ? AND start_time < ?", start, end)

	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPayment(
	ctx context.Context,
	appointmentID uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("pago_not_found", "Pago no encontrado.")
		}
		return nil, err
	}

	return &p, nil
}

func (r *AppointmentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Reporting
// --------------------------------------------------

func (r *AppointmentGormRepository) CountByStatus(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (map[string]int64, error) {

	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Where("start_time >= ? AND start_time < ?", start, end).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func (r *AppointmentGormRepository) RevenueForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where(
			"appointments.start_time >= ? AND appointments.start_time < ? AND payments.status IN ?",
			start, end, []string{models.PaymentPagado, models.PaymentParcial},
		).
		Select("COALESCE(SUM(payments.total), 0)").
		Scan(&total).Error

	return total, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
