package appointment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/estilobarber/barberia-api/internal/calendar"
	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
	"github.com/estilobarber/barberia-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookServiceInput struct {
	ID       uint `json:"id"`
	Quantity int  `json:"cantidad"`
}

type BookInput struct {
	CustomerUserID uint

	StaffID  uint
	Services []BookServiceInput

	Date string // "2006-01-02"
	Time string // "15:04"

	// ClientTotal is what the client believes it will pay. It is advisory:
	// the server recomputes and rejects a mismatch, never trusts it.
	ClientTotal float64

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	calSync  calendar.Sync
	logger   *zap.Logger
	tz       string

	now func() time.Time
}

func NewBook(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	calSync calendar.Sync,
	logger *zap.Logger,
	tz string,
) *Book {
	return &Book{
		repo:     repo,
		notifier: notifier,
		calSync:  calSync,
		logger:   logger,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	if len(in.Services) == 0 {
		return nil, httperr.Validation("missing_servicios", "Debe indicar al menos un servicio.")
	}

	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time", "Fecha u hora inválida.")
	}

	if !start.After(uc.now()) {
		return nil, httperr.Validation("horario_pasado", "El horario ya pasó.")
	}

	// Durations and prices come from the current catalog, never from the
	// client. Unknown or un-offered ids abort before any write.
	services, err := uc.repo.GetOfferedServices(ctx, in.StaffID, serviceIDs(in.Services))
	if err != nil {
		return nil, err
	}
	offered := make(map[uint]models.Service, len(services))
	for _, s := range services {
		offered[s.ID] = s
	}

	var (
		duration time.Duration
		total    float64
		items    []models.AppointmentService
	)
	for _, req := range in.Services {
		svc, ok := offered[req.ID]
		if !ok {
			return nil, httperr.Validation("servicio_no_ofrecido", "El empleado no ofrece uno de los servicios solicitados.")
		}

		qty := req.Quantity
		if qty <= 0 {
			qty = 1
		}

		duration += time.Duration(svc.DurationMin*qty) * time.Minute
		total += svc.Price * float64(qty)
		items = append(items, models.AppointmentService{
			ServiceID: svc.ID,
			Quantity:  qty,
			Price:     svc.Price,
		})
	}
	end := start.Add(duration)

	if in.ClientTotal > 0 && math.Abs(total-in.ClientTotal) > 0.01 {
		return nil, httperr.Validation("total_incorrecto", "El total no coincide con los servicios seleccionados.")
	}

	windows, busy, err := loadOpenIntervals(ctx, uc.repo, in.StaffID, start)
	if err != nil {
		return nil, err
	}
	if !fitsOpenInterval(windows, busy, start, end) {
		return nil, httperr.Validation("fuera_de_horario", "Fuera del horario de atención.")
	}

	ap := &models.Appointment{
		StaffID:   staff.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
		Services:  items,
		Payment: &models.Payment{
			Total:     total,
			Status:    models.PaymentPendiente,
			Reference: uuid.NewString(),
		},
	}

	// The repository repeats the overlap check under a row lock inside the
	// same transaction as the inserts; on conflict nothing is persisted.
	if err := uc.repo.CreateBooking(ctx, domain.BookingCommand{
		CustomerUserID: in.CustomerUserID,
		Appointment:    ap,
	}); err != nil {
		return nil, err
	}

	// Side effects after commit, never the other way around.
	uc.notifier.NotifyConfirmation(ap.ID)
	uc.notifier.NotifyStaffAssignment(ap.ID)
	go uc.syncCalendarCreate(ap.ID, staff.User.Name, start, end)

	return ap, nil
}

func serviceIDs(in []BookServiceInput) []uint {
	ids := make([]uint, 0, len(in))
	for _, s := range in {
		ids = append(ids, s.ID)
	}
	return ids
}

// syncCalendarCreate runs detached from the request with its own timeout.
// A calendar failure is logged and forgotten: it never undoes a booking.
func (uc *Book) syncCalendarCreate(appointmentID uint, staffName string, start, end time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	eventID, err := uc.calSync.CreateEvent(ctx, calendar.Event{
		Summary:     fmt.Sprintf("Cita #%d", appointmentID),
		Description: fmt.Sprintf("Atiende: %s", staffName),
		Start:       start,
		End:         end,
		Timezone:    uc.tz,
	})
	if err != nil {
		uc.logger.Warn("calendar sync failed",
			zap.Uint("cita", appointmentID), zap.Error(err))
		return
	}
	if eventID == "" {
		return
	}

	if err := uc.repo.SetCalendarEventID(ctx, appointmentID, eventID); err != nil {
		uc.logger.Warn("failed to store calendar event id",
			zap.Uint("cita", appointmentID), zap.Error(err))
	}
}
