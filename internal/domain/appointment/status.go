package appointment

import (
	"time"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusConfirmada Status = "confirmada"
	StatusEnProgreso Status = "en_progreso"
	StatusCompletada Status = "completada"
	StatusCancelada  Status = "cancelada"
)

func InitialStatus() Status {
	return StatusPendiente
}

func (s Status) Terminal() bool {
	return s == StatusCompletada || s == StatusCancelada
}

// transitions is the legal forward graph. Cancellation is handled apart:
// it is reachable from every non-terminal state.
var transitions = map[Status]Status{
	StatusPendiente:  StatusConfirmada,
	StatusConfirmada: StatusEnProgreso,
	StatusEnProgreso: StatusCompletada,
}

// CanTransition validates a requested status change against the graph.
func CanTransition(from, to Status) error {
	if to == StatusCancelada {
		if from.Terminal() {
			return httperr.InvalidTransition("invalid_transition", "La cita ya está cerrada.")
		}
		return nil
	}
	if transitions[from] != to {
		return httperr.InvalidTransition("invalid_transition", "Cambio de estado no permitido.")
	}
	return nil
}

// Transition applies a validated status change, stamping the terminal
// timestamps.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelada:
		ap.CancelledAt = &now
	case StatusCompletada:
		ap.CompletedAt = &now
	}
	return nil
}

// Cancel transitions to cancelada; the record is kept, never deleted.
func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelada, now)
}

// BlockingStatuses are the statuses that occupy a time range. Everything
// except cancelada blocks: a cancelled cita frees its slot immediately.
func BlockingStatuses() []string {
	return []string{
		string(StatusPendiente),
		string(StatusConfirmada),
		string(StatusEnProgreso),
		string(StatusCompletada),
	}
}
