package reconcile

import (
	"testing"
	"time"

	"rinksync/core/event"

	"github.com/stretchr/testify/assert"
)

func matchedPair() (event.Target, event.Source) {
	src := event.Source{
		Title:       "Practice",
		Start:       t0,
		End:         t0.Add(90 * time.Minute),
		Location:    "Rink A",
		Description: "Bring skates.",
	}
	tgt := event.Target{
		Title:       "[Rink] Practice",
		Start:       src.Start,
		End:         src.End,
		Location:    "Rink A",
		Description: event.ComposeDescription("Bring skates.", "rs-1"),
		Identity:    "rs-1",
		Ref:         "evt-1",
	}
	return tgt, src
}

func TestNeedsUpdate_NoChange(t *testing.T) {
	d := Detector{Prefix: "[Rink] "}
	tgt, src := matchedPair()
	assert.False(t, d.NeedsUpdate(tgt, src))
}

func TestNeedsUpdate_Title(t *testing.T) {
	d := Detector{Prefix: "[Rink] "}
	tgt, src := matchedPair()
	src.Title = "Practice (moved)"
	assert.True(t, d.NeedsUpdate(tgt, src))
}

func TestNeedsUpdate_ToleranceBoundary(t *testing.T) {
	d := Detector{Prefix: "[Rink] ", Tolerance: 5 * time.Minute}

	t.Run("JustInsideTolerance", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.Start = tgt.Start.Add(5*time.Minute - time.Second)
		assert.False(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("ExactlyTolerance", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.Start = tgt.Start.Add(5 * time.Minute)
		assert.True(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("NegativeDrift", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.Start = tgt.Start.Add(-5 * time.Minute)
		assert.True(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("EndDrift", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.End = tgt.End.Add(6 * time.Minute)
		assert.True(t, d.NeedsUpdate(tgt, src))
	})
}

func TestNeedsUpdate_DefaultEnd(t *testing.T) {
	d := Detector{Prefix: "[Rink] "}
	tgt, src := matchedPair()
	src.End = time.Time{}
	tgt.End = src.Start.Add(event.DefaultDuration)
	assert.False(t, d.NeedsUpdate(tgt, src))
}

func TestNeedsUpdate_LocationCaseInsensitive(t *testing.T) {
	d := Detector{Prefix: "[Rink] "}

	t.Run("CaseDiffers", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.Location = "rink a"
		assert.False(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("WhitespaceDiffers", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.Location = "  Rink A "
		assert.False(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("VenueChanged", func(t *testing.T) {
		tgt, src := matchedPair()
		src.Location = "Rink B"
		assert.True(t, d.NeedsUpdate(tgt, src))
	})
}

func TestNeedsUpdate_DescriptionIgnoresMarker(t *testing.T) {
	d := Detector{Prefix: "[Rink] "}

	t.Run("MarkerOnlyDifference", func(t *testing.T) {
		tgt, src := matchedPair()
		tgt.Description = event.ComposeDescription("Bring skates.", "rs-other")
		assert.False(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("LegacyMarkerEmptyBody", func(t *testing.T) {
		tgt, src := matchedPair()
		src.Description = ""
		tgt.Description = "sync:123"
		assert.False(t, d.NeedsUpdate(tgt, src))
	})

	t.Run("ContentChanged", func(t *testing.T) {
		tgt, src := matchedPair()
		src.Description = "Bring skates and a helmet."
		assert.True(t, d.NeedsUpdate(tgt, src))
	})
}

func TestNeedsUpdate_DoesNotMutateInputs(t *testing.T) {
	d := Detector{Prefix: "[Rink] "}
	tgt, src := matchedPair()
	tgtCopy, srcCopy := tgt, src
	_ = d.NeedsUpdate(tgt, src)
	assert.Equal(t, tgtCopy, tgt)
	assert.Equal(t, srcCopy, src)
}
