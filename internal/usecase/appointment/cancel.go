package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/estilobarber/barberia-api/internal/calendar"
	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
	"github.com/estilobarber/barberia-api/internal/timezone"
)

// CancelOwn is the customer self-service cancellation: only the owner of
// the cita may cancel it, and the record is kept with status cancelada.
type CancelOwn struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	calSync  calendar.Sync
	logger   *zap.Logger
	tz       string
}

func NewCancelOwn(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	calSync calendar.Sync,
	logger *zap.Logger,
	tz string,
) *CancelOwn {
	return &CancelOwn{
		repo:     repo,
		notifier: notifier,
		calSync:  calSync,
		logger:   logger,
		tz:       tz,
	}
}

func (uc *CancelOwn) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	// Not-owned looks identical to not-found on purpose.
	ap, err := uc.repo.GetAppointmentForCustomerUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.NotifyCancellation(ap.ID)
	go deleteCalendarEvent(uc.calSync, uc.logger, ap)

	return ap, nil
}

// deleteCalendarEvent removes the mirrored event, best-effort.
func deleteCalendarEvent(sync calendar.Sync, logger *zap.Logger, ap *models.Appointment) {
	if ap.CalendarEventID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sync.DeleteEvent(ctx, ap.CalendarEventID); err != nil {
		logger.Warn("calendar event delete failed",
			zap.Uint("cita", ap.ID), zap.Error(err))
	}
}
