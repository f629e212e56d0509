package appointment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/estilobarber/barberia-api/internal/calendar"
	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
	"github.com/estilobarber/barberia-api/internal/timezone"
)

// Reschedule moves a cita to a new start, keeping its services and total.
// The new slot goes through the full availability validation again.
type Reschedule struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	calSync  calendar.Sync
	logger   *zap.Logger
	tz       string

	now func() time.Time
}

func NewReschedule(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	calSync calendar.Sync,
	logger *zap.Logger,
	tz string,
) *Reschedule {
	return &Reschedule{
		repo:     repo,
		notifier: notifier,
		calSync:  calSync,
		logger:   logger,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID uint,
	date string,
	hour string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status).Terminal() {
		return nil, httperr.InvalidTransition("cita_cerrada", "La cita ya está cerrada.")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+hour,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time", "Fecha u hora inválida.")
	}

	if !start.After(uc.now()) {
		return nil, httperr.Validation("horario_pasado", "El horario ya pasó.")
	}

	// Duration is preserved: line items are immutable once booked.
	end := start.Add(ap.EndTime.Sub(ap.StartTime))

	windows, busy, err := loadOpenIntervals(ctx, uc.repo, ap.StaffID, start)
	if err != nil {
		return nil, err
	}
	if !fitsOpenInterval(windows, busy, start, end) {
		return nil, httperr.Validation("fuera_de_horario", "Fuera del horario de atención.")
	}

	if err := uc.repo.Reschedule(ctx, ap, start, end); err != nil {
		return nil, err
	}

	uc.notifier.NotifyRescheduled(ap.ID)
	go uc.moveCalendarEvent(ap, start, end)

	return ap, nil
}

// moveCalendarEvent re-creates the mirrored event at the new time. It runs
// detached from the request and never undoes the reschedule.
func (uc *Reschedule) moveCalendarEvent(ap *models.Appointment, start, end time.Time) {
	if ap.CalendarEventID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := uc.calSync.DeleteEvent(ctx, ap.CalendarEventID); err != nil {
		uc.logger.Warn("calendar event delete failed",
			zap.Uint("cita", ap.ID), zap.Error(err))
	}

	eventID, err := uc.calSync.CreateEvent(ctx, calendar.Event{
		Summary:     fmt.Sprintf("Cita #%d", ap.ID),
		Description: fmt.Sprintf("Atiende: %s", ap.Staff.User.Name),
		Start:       start,
		End:         end,
		Timezone:    uc.tz,
	})
	if err != nil {
		uc.logger.Warn("calendar sync failed",
			zap.Uint("cita", ap.ID), zap.Error(err))
		return
	}
	if eventID == "" {
		return
	}

	if err := uc.repo.SetCalendarEventID(ctx, ap.ID, eventID); err != nil {
		uc.logger.Warn("failed to store calendar event id",
			zap.Uint("cita", ap.ID), zap.Error(err))
	}
}
