package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"rinksync/core/event"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// Loader is the feed-loading contract the sync service depends on.
// A non-nil error means the run must abort before any mutation; an
// empty slice with a nil error means the feed legitimately has no
// events. The two are never conflated.
type Loader interface {
	Load(ctx context.Context) ([]event.Source, []byte, error)
}

// Client fetches and parses the schedule feed.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a feed client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// Load fetches the feed and parses it into source events. It also
// returns the raw body so the caller can archive the snapshot. Events
// missing a title or start are dropped and logged; they never abort the
// run. Fetch and parse failures do.
func (c *Client) Load(ctx context.Context) ([]event.Source, []byte, error) {
	if c.cfg.URL == "" {
		return nil, nil, fmt.Errorf("feed URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	events, err := Parse(body, c.logger)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Debug("feed loaded", zap.Int("events", len(events)), zap.Int("bytes", len(body)))
	return events, body, nil
}

// Parse turns an iCalendar payload into source events. Individual
// malformed VEVENTs are dropped; an unparseable payload is an error.
func Parse(body []byte, logger *zap.Logger) ([]event.Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty feed body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	events := make([]event.Source, 0, len(cal.Events()))
	dropped := 0
	for _, ve := range cal.Events() {
		src, ok := parseVEvent(ve)
		if !ok {
			dropped++
			logger.Debug("dropping malformed feed event", zap.String("summary", src.Title))
			continue
		}
		events = append(events, src)
	}
	if dropped > 0 {
		logger.Warn("feed events dropped for missing title or start", zap.Int("dropped", dropped))
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (event.Source, bool) {
	var src event.Source

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		src.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		src.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		src.Description = p.Value
	}

	if start, err := ve.GetStartAt(); err == nil {
		src.Start = start
	}
	if end, err := ve.GetEndAt(); err == nil {
		src.End = end
	}

	return src, src.Valid()
}
