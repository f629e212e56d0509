package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/estilobarber/barberia-api/internal/calendar"
	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
	"github.com/estilobarber/barberia-api/internal/timezone"
)

// ChangeStatus drives the appointment state machine from the staff/admin
// surface. Illegal edges fail without touching the row.
type ChangeStatus struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	calSync  calendar.Sync
	logger   *zap.Logger
	tz       string
}

func NewChangeStatus(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	calSync calendar.Sync,
	logger *zap.Logger,
	tz string,
) *ChangeStatus {
	return &ChangeStatus{
		repo:     repo,
		notifier: notifier,
		calSync:  calSync,
		logger:   logger,
		tz:       tz,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	switch to {
	case domain.StatusPendiente, domain.StatusConfirmada, domain.StatusEnProgreso,
		domain.StatusCompletada, domain.StatusCancelada:
	default:
		return nil, httperr.Validation("estado_desconocido", "Estado no reconocido.")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	switch to {
	case domain.StatusConfirmada:
		uc.notifier.NotifyConfirmation(ap.ID)
	case domain.StatusCancelada:
		uc.notifier.NotifyCancellation(ap.ID)
		go deleteCalendarEvent(uc.calSync, uc.logger, ap)
	}

	return ap, nil
}
