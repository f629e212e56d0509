package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleSync mirrors citas onto a Google Calendar.
type GoogleSync struct {
	svc        *gcal.Service
	calendarID string
}

func NewGoogleSync(ctx context.Context, credentialsFile, calendarID string) (*GoogleSync, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: error building service: %w", err)
	}

	return &GoogleSync{svc: svc, calendarID: calendarID}, nil
}

func (s *GoogleSync) CreateEvent(ctx context.Context, ev Event) (string, error) {
	created, err := s.svc.Events.Insert(s.calendarID, &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	return created.Id, nil
}

func (s *GoogleSync) DeleteEvent(ctx context.Context, eventID string) error {
	return s.svc.Events.Delete(s.calendarID, eventID).Context(ctx).Do()
}

// Compile-time check
var _ Sync = (*GoogleSync)(nil)
