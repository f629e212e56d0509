package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateDBConstraintViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}},
		{"exclusion violation", &pgconn.PgError{Code: "23P01", ConstraintName: "cita_no_overlap"}},
		{"wrapped exclusion violation", fmt.Errorf("create appointment: %w", &pgconn.PgError{Code: "23P01"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateDB(tt.err, "horario_ocupado", "el horario ya está ocupado")
			if KindOf(got) != KindConflict {
				t.Fatalf("kind = %v, want conflict", KindOf(got))
			}
			if !IsBusiness(got, "horario_ocupado") {
				t.Errorf("code not carried through: %v", got)
			}
		})
	}
}

func TestTranslateDBPassesOtherErrorsThrough(t *testing.T) {
	plain := errors.New("connection refused")
	if got := TranslateDB(plain, "horario_ocupado", ""); got != plain {
		t.Errorf("got %v, want the original error", got)
	}

	// Other SQLSTATEs are not conflicts.
	notNull := &pgconn.PgError{Code: "23502"}
	if got := TranslateDB(notNull, "horario_ocupado", ""); !errors.Is(got, notNull) {
		t.Errorf("got %v, want the original pg error", got)
	}

	if got := TranslateDB(nil, "horario_ocupado", ""); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("23505 not recognised")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23P01"}) {
		t.Error("23P01 is not a unique violation")
	}
	if IsUniqueViolation(errors.New("23505")) {
		t.Error("plain error mistaken for a pg error")
	}
}
