package appointment

import (
	"context"
	"time"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
)

type AvailabilityQuery struct {
	StaffID    uint
	ServiceIDs []uint
	// Date at midnight in the shop's timezone.
	Date time.Time
	// Now suppresses past candidates for today's queries.
	Now time.Time
}

type GetAvailability struct {
	repo domain.Repository

	// Slot enumeration steps, in minutes. Sundays keep their own grid.
	stepMin       int
	stepSundayMin int
}

func NewGetAvailability(repo domain.Repository, stepMin, stepSundayMin int) *GetAvailability {
	return &GetAvailability{
		repo:          repo,
		stepMin:       stepMin,
		stepSundayMin: stepSundayMin,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	q AvailabilityQuery,
) ([]domain.TimeSlot, error) {

	if _, err := uc.repo.GetStaff(ctx, q.StaffID); err != nil {
		return nil, err
	}

	duration, err := totalDuration(ctx, uc.repo, q.StaffID, q.ServiceIDs)
	if err != nil {
		return nil, err
	}

	windows, busy, err := loadOpenIntervals(ctx, uc.repo, q.StaffID, q.Date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		// Day off: no slots, not an error.
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := dayBounds(q.Date)
	apps, err := uc.repo.ListBlockingAppointments(ctx, q.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	busy = append(busy, appointmentIntervals(apps)...)

	return domain.Slots(domain.AvailabilityInput{
		Windows:  windows,
		Busy:     busy,
		Duration: duration,
		Step:     uc.stepFor(q.Date.Weekday()),
		Now:      q.Now,
	}), nil
}

func (uc *GetAvailability) stepFor(weekday time.Weekday) time.Duration {
	if weekday == time.Sunday {
		return time.Duration(uc.stepSundayMin) * time.Minute
	}
	return time.Duration(uc.stepMin) * time.Minute
}

// totalDuration resolves the requested services against the staff member's
// offered set and sums their durations. Any unknown or un-offered id is an
// invalid request.
func totalDuration(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	serviceIDs []uint,
) (time.Duration, error) {

	if len(serviceIDs) == 0 {
		return 0, httperr.Validation("missing_servicios", "Debe indicar al menos un servicio.")
	}

	services, err := repo.GetOfferedServices(ctx, staffID, serviceIDs)
	if err != nil {
		return 0, err
	}

	offered := make(map[uint]int, len(services))
	for _, s := range services {
		offered[s.ID] = s.DurationMin
	}

	var total time.Duration
	seen := make(map[uint]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		min, ok := offered[id]
		if !ok {
			return 0, httperr.Validation("servicio_no_ofrecido", "El empleado no ofrece uno de los servicios solicitados.")
		}
		total += time.Duration(min) * time.Minute
	}

	return total, nil
}
