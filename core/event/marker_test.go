package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeDescription(t *testing.T) {
	t.Run("WithBody", func(t *testing.T) {
		desc := ComposeDescription("Bring skates.", "rs-123")
		assert.Equal(t, "Bring skates.\n\nrinksync-id: rs-123", desc)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		desc := ComposeDescription("", "rs-123")
		assert.Equal(t, "rinksync-id: rs-123", desc)
	})

	t.Run("BodyWhitespaceTrimmed", func(t *testing.T) {
		desc := ComposeDescription("  Bring skates.\n", "rs-123")
		assert.Equal(t, "Bring skates.\n\nrinksync-id: rs-123", desc)
	})
}

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
		ok          bool
	}{
		{"TrailingMarker", "Bring skates.\n\nrinksync-id: rs-123", "rs-123", true},
		{"MarkerOnly", "rinksync-id: rs-123", "rs-123", true},
		{"LegacyForm", "sync:456", "456", true},
		{"LegacyFormPadded", "  sync:456  ", "456", true},
		{"LegacyNotAlone", "notes\nsync:456", "", false},
		{"NoMarker", "Just a description", "", false},
		{"Empty", "", "", false},
		{"MarkerNotLast", "rinksync-id: rs-123\nmore text", "", false},
		{"EmptyIdentity", "rinksync-id: ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractIdentity(tt.description)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestStripMarker(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"TrailingMarker", "Bring skates.\n\nrinksync-id: rs-123", "Bring skates."},
		{"MarkerOnly", "rinksync-id: rs-123", ""},
		{"LegacyForm", "sync:456", ""},
		{"NoMarker", "Just a description", "Just a description"},
		{"Empty", "", ""},
		{"MultilineBody", "line one\nline two\n\nrinksync-id: rs-9", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarker(tt.description))
		})
	}
}

func TestComposeExtractRoundTrip(t *testing.T) {
	desc := ComposeDescription("Weekly practice.", "rs-1658699273")
	id, ok := ExtractIdentity(desc)
	assert.True(t, ok)
	assert.Equal(t, "rs-1658699273", id)
	assert.Equal(t, "Weekly practice.", StripMarker(desc))
}
