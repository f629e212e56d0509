package appointment

import (
	"context"
	"time"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/models"
)

// parseHM anchors an "HH:MM" working-hours value onto a concrete day.
func parseHM(day time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

// dayBounds returns [midnight, midnight+24h) for the given date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

// loadOpenIntervals resolves the staff member's effective availability for
// the date: working-hour windows minus declared absences. The second return
// value holds the absence intervals so callers can treat them as busy time
// together with existing appointments.
func loadOpenIntervals(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	date time.Time,
) ([]domain.Interval, []domain.Interval, error) {

	hours, err := repo.ListWorkingHours(ctx, staffID, int(date.Weekday()))
	if err != nil {
		return nil, nil, err
	}

	var windows []domain.Interval
	for _, wh := range hours {
		if wh.StartTime == "" || wh.EndTime == "" {
			continue
		}
		iv := domain.Interval{
			Start: parseHM(date, wh.StartTime),
			End:   parseHM(date, wh.EndTime),
		}
		if iv.Valid() {
			windows = append(windows, iv)
		}
	}

	dayStart, dayEnd := dayBounds(date)
	absences, err := repo.ListAbsences(ctx, staffID, dayStart, dayEnd)
	if err != nil {
		return nil, nil, err
	}

	var busy []domain.Interval
	for _, ab := range absences {
		busy = append(busy, domain.Interval{Start: ab.StartTime, End: ab.EndTime})
	}

	return windows, busy, nil
}

// fitsOpenInterval reports whether [start,end) lies fully inside the
// effective availability (windows minus busy).
func fitsOpenInterval(windows, busy []domain.Interval, start, end time.Time) bool {
	for _, open := range domain.Subtract(windows, busy) {
		if !start.Before(open.Start) && !end.After(open.End) {
			return true
		}
	}
	return false
}

// appointmentIntervals converts blocking appointments to busy intervals.
func appointmentIntervals(apps []models.Appointment) []domain.Interval {
	out := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		out = append(out, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return out
}
