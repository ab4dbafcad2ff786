package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rinksync/core/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//rink//schedule//EN
BEGIN:VEVENT
UID:evt-1@rink
SUMMARY:Practice
DTSTART:20250101T180000Z
DTEND:20250101T193000Z
LOCATION:Rink A
DESCRIPTION:Bring skates.
END:VEVENT
BEGIN:VEVENT
UID:evt-2@rink
SUMMARY:Game
DTSTART:20250102T200000Z
END:VEVENT
BEGIN:VEVENT
UID:evt-3@rink
DTSTART:20250103T180000Z
END:VEVENT
END:VCALENDAR
`

const emptyICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//rink//schedule//EN
END:VCALENDAR
`

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad(t *testing.T) {
	srv := serveBody(t, http.StatusOK, sampleICS)
	client := feed.NewClient(feed.Config{URL: srv.URL}, nil)

	events, raw, err := client.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []byte(sampleICS), raw)

	// The titleless third event is dropped, not fatal.
	require.Len(t, events, 2)

	assert.Equal(t, "Practice", events[0].Title)
	assert.Equal(t, "Rink A", events[0].Location)
	assert.Equal(t, "Bring skates.", events[0].Description)
	assert.Equal(t, time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC), events[0].Start.UTC())
	assert.Equal(t, time.Date(2025, 1, 1, 19, 30, 0, 0, time.UTC), events[0].End.UTC())

	// No DTEND: the engine substitutes the default duration later.
	assert.Equal(t, "Game", events[1].Title)
	assert.True(t, events[1].End.IsZero() || events[1].End.Equal(events[1].Start),
		"missing DTEND must not invent an end time")
}

func TestLoad_EmptyFeedIsNotAnError(t *testing.T) {
	srv := serveBody(t, http.StatusOK, emptyICS)
	client := feed.NewClient(feed.Config{URL: srv.URL}, nil)

	events, _, err := client.Load(context.Background())

	require.NoError(t, err, "a feed with zero events is a valid load")
	assert.Empty(t, events)
}

func TestLoad_FailuresAreErrors(t *testing.T) {
	t.Run("ServerError", func(t *testing.T) {
		srv := serveBody(t, http.StatusInternalServerError, "boom")
		client := feed.NewClient(feed.Config{URL: srv.URL}, nil)

		events, _, err := client.Load(context.Background())
		assert.Error(t, err)
		assert.Nil(t, events)
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := feed.NewClient(feed.Config{URL: "http://127.0.0.1:1", TimeoutSeconds: 1}, nil)

		events, _, err := client.Load(context.Background())
		assert.Error(t, err)
		assert.Nil(t, events)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := serveBody(t, http.StatusOK, "this is not a calendar")
		client := feed.NewClient(feed.Config{URL: srv.URL}, nil)

		events, _, err := client.Load(context.Background())
		assert.Error(t, err)
		assert.Nil(t, events)
	})

	t.Run("NoURL", func(t *testing.T) {
		client := feed.NewClient(feed.Config{}, nil)

		_, _, err := client.Load(context.Background())
		assert.Error(t, err)
	})
}
