package reconcile

import (
	"fmt"
	"testing"
	"time"

	"rinksync/core/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(scheme Scheme) *Engine {
	return NewEngine(scheme, Detector{Prefix: "[Rink] ", Tolerance: 5 * time.Minute}, nil)
}

// simulateApply plays a plan against an in-memory target list the way a
// successful executor would, so idempotence can be checked end to end.
func simulateApply(plan *Plan, targets []event.Target) []event.Target {
	next := make([]event.Target, 0, len(targets))
	deleted := make(map[string]struct{})
	updated := make(map[string]event.Target)
	refSeq := 0

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDelete:
			deleted[action.Desired.Ref] = struct{}{}
		case ActionUpdate:
			updated[action.Desired.Ref] = action.Desired
		}
	}

	for _, tgt := range targets {
		if _, ok := deleted[tgt.Ref]; ok {
			continue
		}
		if desired, ok := updated[tgt.Ref]; ok {
			next = append(next, desired)
			continue
		}
		next = append(next, tgt)
	}

	for _, action := range plan.Actions {
		if action.Type != ActionCreate {
			continue
		}
		created := action.Desired
		refSeq++
		created.Ref = fmt.Sprintf("new-%d", refSeq)
		next = append(next, created)
	}

	return next
}

func TestPlan_CreateThenUnchanged(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{{Title: "Practice", Start: t0, Location: "Rink A"}}

	plan := e.Plan(sources, nil)

	require.Len(t, plan.Actions, 1)
	action := plan.Actions[0]
	assert.Equal(t, ActionCreate, action.Type)
	assert.Equal(t, 1, plan.Result.Created)
	assert.Equal(t, "[Rink] Practice", action.Desired.Title)
	assert.Equal(t, t0.Add(event.DefaultDuration), action.Desired.End)

	// The marker embedded in the description must round-trip to the
	// identity derived from the triple.
	wantID := Derive(SchemeFNV64, "Practice", t0, "Rink A")
	gotID, ok := event.ExtractIdentity(action.Desired.Description)
	require.True(t, ok)
	assert.Equal(t, wantID, gotID)

	// Re-running with the created event present yields all-unchanged.
	targets := simulateApply(plan, nil)
	second := e.Plan(sources, targets)
	assert.Empty(t, second.Actions)
	assert.Equal(t, 1, second.Result.Unchanged)
	assert.Zero(t, second.Result.Mutations())
}

func TestPlan_Idempotence(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{
		{Title: "Practice", Start: t0, Location: "Rink A", Description: "Bring skates."},
		{Title: "Game", Start: t0.Add(24 * time.Hour), End: t0.Add(27 * time.Hour), Location: "Rink B"},
		{Title: "Stick & Puck", Start: t0.Add(48 * time.Hour), Location: ""},
	}
	targets := []event.Target{
		// Stale event the feed no longer carries.
		{Title: "[Rink] Cancelled Clinic", Start: t0.Add(72 * time.Hour), End: t0.Add(73 * time.Hour),
			Description: "rinksync-id: rs-999", Identity: "rs-999", Ref: "stale-1"},
	}

	first := e.Plan(sources, targets)
	assert.Equal(t, 3, first.Result.Created)
	assert.Equal(t, 1, first.Result.Removed)

	after := simulateApply(first, targets)
	second := e.Plan(sources, after)
	assert.Empty(t, second.Actions)
	assert.Equal(t, 3, second.Result.Unchanged)
	assert.Zero(t, second.Result.Mutations())
}

func TestPlan_UpdateOnDrift(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{{Title: "Practice", Start: t0, Location: "Rink A"}}
	created := e.Plan(sources, nil)
	targets := simulateApply(created, nil)

	// The feed moved the end time well past tolerance.
	sources[0].End = t0.Add(3 * time.Hour)

	plan := e.Plan(sources, targets)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionUpdate, plan.Actions[0].Type)
	assert.False(t, plan.Actions[0].Migrated)
	assert.Equal(t, targets[0].Ref, plan.Actions[0].Desired.Ref)
	assert.Equal(t, 1, plan.Result.Updated)
	assert.Zero(t, plan.Result.Created)
	assert.Zero(t, plan.Result.Removed)
}

func TestPlan_MigrationRescue(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{{Title: "Practice", Start: t0, Location: "Rink A"}}

	// Target synced under the legacy identity scheme: stored identity
	// matches nothing, but the triple matches exactly.
	legacyID := Derive(SchemeLegacy31, "Practice", t0, "Rink A")
	targets := []event.Target{{
		Title:       "[Rink] Practice",
		Start:       t0,
		End:         t0.Add(event.DefaultDuration),
		Location:    "Rink A",
		Description: event.ComposeDescription("", legacyID),
		Identity:    legacyID,
		Ref:         "old-1",
	}}

	plan := e.Plan(sources, targets)

	require.Len(t, plan.Actions, 1)
	action := plan.Actions[0]
	assert.Equal(t, ActionUpdate, action.Type)
	assert.True(t, action.Migrated)
	assert.Equal(t, "old-1", action.Desired.Ref)
	assert.Equal(t, 1, plan.Result.Migrated)
	assert.Zero(t, plan.Result.Created)
	assert.Zero(t, plan.Result.Removed, "migration must never become create+delete")

	// After the rewrite the marker carries the new identity and the run
	// settles.
	after := simulateApply(plan, targets)
	second := e.Plan(sources, after)
	assert.Empty(t, second.Actions)
	assert.Equal(t, 1, second.Result.Unchanged)
}

func TestPlan_EmptySourceRemovesAllTargets(t *testing.T) {
	// A legitimately empty feed removes everything managed. The failed
	// load path never reaches the engine; the service aborts first.
	e := newTestEngine(SchemeFNV64)
	targets := []event.Target{
		{Title: "[Rink] Practice", Start: t0, Identity: "rs-1", Ref: "a"},
		{Title: "[Rink] Game", Start: t0.Add(time.Hour), Identity: "rs-2", Ref: "b"},
	}

	plan := e.Plan(nil, targets)

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, ActionDelete, plan.Actions[0].Type)
	assert.Equal(t, ActionDelete, plan.Actions[1].Type)
	assert.Equal(t, "a", plan.Actions[0].Desired.Ref)
	assert.Equal(t, "b", plan.Actions[1].Desired.Ref)
	assert.Equal(t, 2, plan.Result.Removed)
}

func TestPlan_SourceCollisionLastWins(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	// Identical triples collide by construction; distinct descriptions
	// show which one won.
	sources := []event.Source{
		{Title: "Practice", Start: t0, Location: "Rink A", Description: "first"},
		{Title: "Practice", Start: t0, Location: "Rink A", Description: "second"},
	}

	plan := e.Plan(sources, nil)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, 1, plan.Result.Created)
	assert.Equal(t, 1, plan.Result.SourceCollisions)
	assert.Contains(t, plan.Actions[0].Desired.Description, "second")
}

func TestPlan_DuplicateTargetProtected(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{{Title: "Practice", Start: t0, Location: "Rink A"}}
	id := Derive(SchemeFNV64, "Practice", t0, "Rink A")

	// Two calendar events claim the same feed event. The second is not
	// the primary match but must not be deleted.
	targets := []event.Target{
		{Title: "[Rink] Practice", Start: t0, End: t0.Add(event.DefaultDuration), Location: "Rink A",
			Description: event.ComposeDescription("", id), Identity: id, Ref: "dup-1"},
		{Title: "[Rink] Practice", Start: t0, End: t0.Add(event.DefaultDuration), Location: "Rink A",
			Description: event.ComposeDescription("", id), Identity: id, Ref: "dup-2"},
	}

	plan := e.Plan(sources, targets)

	assert.Empty(t, plan.Actions)
	assert.Equal(t, 1, plan.Result.DuplicateTargets)
	assert.Equal(t, 2, plan.Result.Unchanged)
	assert.Zero(t, plan.Result.Removed)
}

func TestPlan_UnmarkedTargetRescuedByContentKey(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{{Title: "Practice", Start: t0, Location: "Rink A"}}

	// No recognizable marker at all, but the de-prefixed triple matches.
	targets := []event.Target{{
		Title: "[Rink] Practice", Start: t0, End: t0.Add(event.DefaultDuration),
		Location: "Rink A", Description: "hand-edited", Ref: "x",
	}}

	plan := e.Plan(sources, targets)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionUpdate, plan.Actions[0].Type)
	assert.True(t, plan.Actions[0].Migrated)
	assert.Equal(t, 1, plan.Result.Migrated)
	assert.Zero(t, plan.Result.Removed)
}

func TestPlan_OrderingCreatesAndUpdatesBeforeDeletes(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{
		{Title: "New", Start: t0, Location: "Rink A"},
		{Title: "Moved", Start: t0.Add(time.Hour), Location: "Rink B"},
	}
	movedPlan := e.Plan([]event.Source{sources[1]}, nil)
	targets := simulateApply(movedPlan, nil)
	targets = append(targets, event.Target{
		Title: "[Rink] Gone", Start: t0.Add(2 * time.Hour), Identity: "rs-gone", Ref: "gone",
	})
	sources[1].Description = "note added" // force an update

	plan := e.Plan(sources, targets)

	require.Len(t, plan.Actions, 3)
	assert.Equal(t, ActionCreate, plan.Actions[0].Type)
	assert.Equal(t, ActionUpdate, plan.Actions[1].Type)
	assert.Equal(t, ActionDelete, plan.Actions[2].Type)
}

func TestPlan_SkipsInvalidSources(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{
		{Title: "", Start: t0},
		{Title: "No start"},
		{Title: "Valid", Start: t0},
	}

	plan := e.Plan(sources, nil)

	assert.Equal(t, 1, plan.Result.Created)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "[Rink] Valid", plan.Actions[0].Desired.Title)
}

func TestPlan_Deterministic(t *testing.T) {
	e := newTestEngine(SchemeFNV64)
	sources := []event.Source{
		{Title: "Practice", Start: t0, Location: "Rink A"},
		{Title: "Game", Start: t0.Add(time.Hour), Location: "Rink B"},
	}
	targets := []event.Target{
		{Title: "[Rink] Old", Start: t0.Add(-time.Hour), Identity: "rs-old", Ref: "o"},
	}

	first := e.Plan(sources, targets)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Plan(sources, targets))
	}
}
