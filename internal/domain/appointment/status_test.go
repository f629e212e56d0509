package appointment

import (
	"testing"
	"time"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/models"
)

func TestCanTransitionForwardChain(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPendiente, StatusConfirmada},
		{StatusConfirmada, StatusEnProgreso},
		{StatusEnProgreso, StatusCompletada},
	}
	for _, tc := range allowed {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Errorf("%s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPendiente, StatusEnProgreso},
		{StatusPendiente, StatusCompletada},
		{StatusConfirmada, StatusCompletada},
		{StatusCompletada, StatusConfirmada},
		{StatusEnProgreso, StatusPendiente},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		if err == nil {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
			continue
		}
		if httperr.KindOf(err) != httperr.KindInvalidTransition {
			t.Errorf("%s -> %s: wrong error kind: %v", tc.from, tc.to, err)
		}
	}
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []Status{StatusPendiente, StatusConfirmada, StatusEnProgreso} {
		if err := CanTransition(from, StatusCancelada); err != nil {
			t.Errorf("cancel from %s should be allowed: %v", from, err)
		}
	}
	for _, from := range []Status{StatusCompletada, StatusCancelada} {
		if err := CanTransition(from, StatusCancelada); err == nil {
			t.Errorf("cancel from terminal %s should be rejected", from)
		}
	}
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusEnProgreso)}
	if err := Transition(ap, StatusCompletada, now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if ap.Status != string(StatusCompletada) {
		t.Errorf("status = %s, want completada", ap.Status)
	}
	if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", ap.CompletedAt, now)
	}

	ap = &models.Appointment{Status: string(StatusPendiente)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Errorf("CancelledAt = %v, want %v", ap.CancelledAt, now)
	}
}

func TestTransitionRejectionLeavesRecordUntouched(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusPendiente)}

	if err := Transition(ap, StatusCompletada, now); err == nil {
		t.Fatal("pendiente -> completada should be rejected")
	}
	if ap.Status != string(StatusPendiente) || ap.CompletedAt != nil {
		t.Errorf("record mutated after rejected transition: %+v", ap)
	}
}

func TestBlockingStatuses(t *testing.T) {
	blocking := BlockingStatuses()
	for _, s := range blocking {
		if s == string(StatusCancelada) {
			t.Error("cancelada must not block a slot")
		}
	}
	if len(blocking) != 4 {
		t.Errorf("got %d blocking statuses, want 4", len(blocking))
	}
}
