package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/estilobarber/barberia-api/internal/models"
)

type EventKind string

const (
	KindConfirmacion EventKind = "confirmacion"
	KindRecordatorio EventKind = "recordatorio"
	KindAsignacion   EventKind = "asignacion"
	KindCancelacion  EventKind = "cancelacion"
	KindReprogramada EventKind = "reprogramada"
)

type Event struct {
	Kind          EventKind
	AppointmentID uint
}

// Dispatcher fires notifications after appointment lifecycle events.
// Delivery is best-effort on a background worker: a full queue drops the
// event, and no failure ever reaches the booking path.
type Dispatcher struct {
	db     *gorm.DB
	pusher Pusher
	logger *zap.Logger
	queue  chan Event
}

func NewDispatcher(db *gorm.DB, pusher Pusher, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		db:     db,
		pusher: pusher,
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("notification queue full, dropping event",
			zap.String("kind", string(ev.Kind)),
			zap.Uint("cita", ev.AppointmentID),
		)
	}
}

func (d *Dispatcher) NotifyConfirmation(appointmentID uint) {
	d.Dispatch(Event{Kind: KindConfirmacion, AppointmentID: appointmentID})
}

func (d *Dispatcher) NotifyReminder(appointmentID uint) {
	d.Dispatch(Event{Kind: KindRecordatorio, AppointmentID: appointmentID})
}

func (d *Dispatcher) NotifyStaffAssignment(appointmentID uint) {
	d.Dispatch(Event{Kind: KindAsignacion, AppointmentID: appointmentID})
}

func (d *Dispatcher) NotifyCancellation(appointmentID uint) {
	d.Dispatch(Event{Kind: KindCancelacion, AppointmentID: appointmentID})
}

func (d *Dispatcher) NotifyRescheduled(appointmentID uint) {
	d.Dispatch(Event{Kind: KindReprogramada, AppointmentID: appointmentID})
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.handle(ctx, ev); err != nil {
			d.logger.Warn("notification delivery failed",
				zap.String("kind", string(ev.Kind)),
				zap.Uint("cita", ev.AppointmentID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev Event) error {
	var ap models.Appointment
	if err := d.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Staff.User").
		Preload("Services.Service").
		First(&ap, ev.AppointmentID).Error; err != nil {
		return err
	}

	fecha := ap.StartTime.Format("02/01/2006")
	hora := ap.StartTime.Format("15:04")
	deepLink := fmt.Sprintf("app://citas/%d", ap.ID)

	switch ev.Kind {
	case KindConfirmacion:
		d.deliver(ctx, ap.Customer.UserID,
			"Tu cita está registrada",
			fmt.Sprintf("Te esperamos el %s a las %s con %s.", fecha, hora, ap.Staff.User.Name),
			string(ev.Kind), deepLink)

	case KindAsignacion:
		d.deliver(ctx, ap.Staff.UserID,
			"Nueva cita asignada",
			fmt.Sprintf("Tienes una cita el %s a las %s con %s.", fecha, hora, ap.Customer.User.Name),
			string(ev.Kind), deepLink)

	case KindRecordatorio:
		d.deliver(ctx, ap.Customer.UserID,
			"Recordatorio de cita",
			fmt.Sprintf("Tu cita es el %s a las %s. ¡Te esperamos!", fecha, hora),
			string(ev.Kind), deepLink)

	case KindReprogramada:
		d.deliver(ctx, ap.Customer.UserID,
			"Tu cita fue reprogramada",
			fmt.Sprintf("Nueva fecha: %s a las %s.", fecha, hora),
			string(ev.Kind), deepLink)

	case KindCancelacion:
		d.deliver(ctx, ap.Customer.UserID,
			"Cita cancelada",
			fmt.Sprintf("Tu cita del %s a las %s fue cancelada.", fecha, hora),
			string(ev.Kind), deepLink)
		d.deliver(ctx, ap.Staff.UserID,
			"Cita cancelada",
			fmt.Sprintf("La cita del %s a las %s fue cancelada.", fecha, hora),
			string(ev.Kind), deepLink)
	}

	return nil
}

// deliver persists the in-app notification and pushes to every device of
// the recipient. Partial failures degrade to warnings; unregistered tokens
// are pruned.
func (d *Dispatcher) deliver(ctx context.Context, userID uint, title, body, category, deepLink string) {
	n := models.Notification{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Category: category,
		DeepLink: deepLink,
	}
	if err := d.db.WithContext(ctx).Create(&n).Error; err != nil {
		d.logger.Warn("failed to persist notification",
			zap.Uint("user", userID), zap.Error(err))
	}

	var tokens []models.DeviceToken
	if err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&tokens).Error; err != nil {
		d.logger.Warn("failed to load device tokens",
			zap.Uint("user", userID), zap.Error(err))
		return
	}

	// No deliverable channel is a successful no-op.
	for _, t := range tokens {
		err := d.pusher.Push(ctx, t.Token, title, body, map[string]string{
			"category":  category,
			"deep_link": deepLink,
		})
		if err == nil {
			continue
		}
		if errors.Is(err, ErrTokenGone) {
			if derr := d.db.WithContext(ctx).Delete(&models.DeviceToken{}, t.ID).Error; derr != nil {
				d.logger.Warn("failed to prune device token",
					zap.Uint("user", userID), zap.Error(derr))
			}
			continue
		}
		d.logger.Warn("push delivery failed",
			zap.Uint("user", userID), zap.Error(err))
	}
}
