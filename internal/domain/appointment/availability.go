package appointment

import "time"

// AvailabilityInput carries everything the slot engine needs, already
// resolved to concrete intervals in the shop's timezone.
type AvailabilityInput struct {
	// Windows are the staff member's working-hour windows for the day.
	Windows []Interval
	// Busy holds absences plus every non-cancelled appointment of the day.
	Busy []Interval
	// Duration is the total length of all requested services.
	Duration time.Duration
	// Step is the enumeration granularity for the weekday.
	Step time.Duration
	// Now suppresses candidates already in the past for today's queries.
	Now time.Time
}

// Slots enumerates candidate starts inside each open sub-interval.
// Candidates align to the sub-interval start, so a freed gap is offered
// from its own beginning. Results ascend chronologically.
func Slots(in AvailabilityInput) []TimeSlot {
	if in.Duration <= 0 || in.Step <= 0 {
		return nil
	}

	var slots []TimeSlot
	for _, open := range Subtract(in.Windows, in.Busy) {
		for t := open.Start; !t.Add(in.Duration).After(open.End); t = t.Add(in.Step) {
			if t.Before(in.Now) {
				continue
			}
			slots = append(slots, TimeSlot{Start: t, End: t.Add(in.Duration)})
		}
	}
	return slots
}
