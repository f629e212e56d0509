package appointment

import "time"

// Interval is half-open: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// TimeSlot is a bookable candidate returned by the availability engine.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Subtract removes every busy interval from the open intervals, returning
// the remaining open sub-intervals in ascending order.
func Subtract(open []Interval, busy []Interval) []Interval {
	out := open
	for _, b := range busy {
		if !b.Valid() {
			continue
		}
		var next []Interval
		for _, o := range out {
			if !o.Overlaps(b) {
				next = append(next, o)
				continue
			}
			if o.Start.Before(b.Start) {
				next = append(next, Interval{Start: o.Start, End: b.Start})
			}
			if b.End.Before(o.End) {
				next = append(next, Interval{Start: b.End, End: o.End})
			}
		}
		out = next
	}
	return out
}
