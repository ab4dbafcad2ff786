package event

import "strings"

const (
	// MarkerPrefix starts the identity line appended to every managed
	// description. The line is always the last one in the description.
	MarkerPrefix = "rinksync-id: "

	// legacyMarkerPrefix is the whole-description form written by the
	// previous sync implementation. Kept so events created before the
	// rewrite are still recognized as managed.
	legacyMarkerPrefix = "sync:"
)

// ComposeDescription returns the description to store in the calendar:
// the feed-provided body followed by the identity marker line. An empty
// body yields just the marker.
func ComposeDescription(body, identity string) string {
	marker := MarkerPrefix + identity
	body = strings.TrimSpace(body)
	if body == "" {
		return marker
	}
	return body + "\n\n" + marker
}

// ExtractIdentity recovers the embedded identity from a stored
// description. It recognizes the current trailing marker line and the
// legacy whole-description form. ok is false when neither is present.
func ExtractIdentity(description string) (identity string, ok bool) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", false
	}

	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if strings.HasPrefix(last, MarkerPrefix) {
		id := strings.TrimSpace(strings.TrimPrefix(last, MarkerPrefix))
		if id != "" {
			return id, true
		}
	}

	// Legacy records stored the bare marker as the entire description.
	if strings.HasPrefix(trimmed, legacyMarkerPrefix) && !strings.Contains(trimmed, "\n") {
		id := strings.TrimSpace(strings.TrimPrefix(trimmed, legacyMarkerPrefix))
		if id != "" {
			return id, true
		}
	}

	return "", false
}

// StripMarker removes the identity marker from a description so the
// remaining content can be compared between source and target. Both the
// trailing-line and legacy whole-description forms are handled.
func StripMarker(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, legacyMarkerPrefix) && !strings.Contains(trimmed, "\n") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if strings.HasPrefix(last, MarkerPrefix) {
		return strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n"))
	}

	return trimmed
}
