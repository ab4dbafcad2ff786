package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"rinksync/core/event"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client defines the calendar operations the sync service needs. The
// interface exists so handlers and the service can be tested against
// calendar/mocks without a live Google account.
type Client interface {
	// ListWindow returns the managed events between from and to: those
	// bearing the managed title prefix and an identity marker. The
	// bounds follow the events API: from cuts on an event's end, to on
	// its start, so an event still running at from is included.
	ListWindow(ctx context.Context, from, to time.Time) ([]event.Target, error)
	// Create inserts a new managed event.
	Create(ctx context.Context, desired event.Target) error
	// Update rewrites the event addressed by desired.Ref.
	Update(ctx context.Context, desired event.Target) error
	// Delete removes the event addressed by desired.Ref.
	Delete(ctx context.Context, desired event.Target) error
}

// googleClient wraps the Google Calendar API v3 service.
type googleClient struct {
	svc        *gcal.Service
	calendarID string
	prefix     string
}

// NewClient creates a calendar client authenticated with a service
// account key. prefix is the managed title prefix used to filter
// listings down to events this system owns.
func NewClient(ctx context.Context, cfg Config, prefix string) (Client, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &googleClient{svc: svc, calendarID: cfg.CalendarID, prefix: prefix}, nil
}

func (c *googleClient) ListWindow(ctx context.Context, from, to time.Time) ([]event.Target, error) {
	var targets []event.Target

	pageToken := ""
	for {
		call := c.svc.Events.List(c.calendarID).
			Context(ctx).
			ShowDeleted(false).
			SingleEvents(true).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			MaxResults(250)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}

		for _, item := range page.Items {
			tgt, ok := itemToTarget(item, c.prefix)
			if !ok {
				continue
			}
			targets = append(targets, tgt)
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return targets, nil
}

func (c *googleClient) Create(ctx context.Context, desired event.Target) error {
	_, err := c.svc.Events.Insert(c.calendarID, targetToItem(desired)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

func (c *googleClient) Update(ctx context.Context, desired event.Target) error {
	_, err := c.svc.Events.Update(c.calendarID, desired.Ref, targetToItem(desired)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update calendar event %s: %w", desired.Ref, err)
	}
	return nil
}

func (c *googleClient) Delete(ctx context.Context, desired event.Target) error {
	if err := c.svc.Events.Delete(c.calendarID, desired.Ref).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", desired.Ref, err)
	}
	return nil
}

// itemToTarget maps an API event to the domain type. Events without the
// managed prefix or a marker-bearing description belong to the calendar
// owner and are invisible to the engine. All-day events carry a date
// instead of a datetime and are skipped; the feed never produces them.
func itemToTarget(item *gcal.Event, prefix string) (event.Target, bool) {
	if !strings.HasPrefix(item.Summary, prefix) {
		return event.Target{}, false
	}
	if !hasMarker(item.Description) {
		return event.Target{}, false
	}
	if item.Start == nil || item.Start.DateTime == "" || item.End == nil || item.End.DateTime == "" {
		return event.Target{}, false
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return event.Target{}, false
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return event.Target{}, false
	}

	identity, _ := event.ExtractIdentity(item.Description)

	return event.Target{
		Title:       item.Summary,
		Start:       start,
		End:         end,
		Location:    item.Location,
		Description: item.Description,
		Identity:    identity,
		Ref:         item.Id,
	}, true
}

// targetToItem maps a desired projection back to the API type.
func targetToItem(t event.Target) *gcal.Event {
	return &gcal.Event{
		Summary:     t.Title,
		Location:    t.Location,
		Description: t.Description,
		Start:       &gcal.EventDateTime{DateTime: t.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: t.End.Format(time.RFC3339)},
	}
}

// hasMarker reports whether a description looks marker-bearing in
// either the current or the legacy form. Extraction may still fail on
// a mangled marker; such events remain managed and fall back to the
// content key.
func hasMarker(description string) bool {
	return strings.Contains(description, event.MarkerPrefix) ||
		strings.HasPrefix(strings.TrimSpace(description), "sync:")
}
