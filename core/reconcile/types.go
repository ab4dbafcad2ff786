package reconcile

import (
	"time"

	"rinksync/core/event"
)

// ActionType represents the kind of calendar mutation an action requests.
type ActionType string

const (
	// ActionCreate inserts a new managed event into the calendar.
	ActionCreate ActionType = "create"
	// ActionUpdate rewrites an existing managed event in place.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a managed event no longer present in the feed.
	ActionDelete ActionType = "delete"
)

// Action is one planned calendar mutation.
type Action struct {
	// Type specifies the mutation to perform.
	Type ActionType `json:"type"`

	// Identity is the derived identity of the event the action concerns.
	Identity string `json:"identity"`

	// Desired is the projected calendar event for creates and updates:
	// prefixed title, marker-bearing description, defaulted end time. For
	// updates and deletes its Ref addresses the existing calendar event.
	Desired event.Target `json:"-"`

	// Migrated marks updates that matched through the content key rather
	// than the identity, i.e. rescued from an older identity scheme or a
	// hash mismatch.
	Migrated bool `json:"migrated,omitempty"`

	// Reason explains why this action was planned.
	Reason string `json:"reason"`
}

// Result carries the per-category counts of one reconciliation run. The
// five classification counts are mutually exclusive and exhaustive over
// the events the run saw.
type Result struct {
	// Created counts feed events with no calendar counterpart.
	Created int `json:"created"`

	// Updated counts calendar events rewritten because a field drifted.
	Updated int `json:"updated"`

	// Migrated counts calendar events rescued through the content key.
	Migrated int `json:"migrated"`

	// Unchanged counts calendar events already in agreement with the feed.
	Unchanged int `json:"unchanged"`

	// Removed counts calendar events deleted because no feed event
	// matched them on either key.
	Removed int `json:"removed"`

	// SourceCollisions counts pairs of feed events that derived the same
	// identity. Non-fatal (last one wins), but a hash-quality signal.
	SourceCollisions int `json:"source_collisions"`

	// DuplicateTargets counts calendar events that were protected from
	// deletion by a key match but not claimed as the primary match.
	DuplicateTargets int `json:"duplicate_targets"`

	// Failed counts actions whose calendar call failed during apply.
	Failed int `json:"failed"`
}

// Mutations returns the total number of planned or applied mutations.
func (r Result) Mutations() int {
	return r.Created + r.Updated + r.Migrated + r.Removed
}

// Plan is the engine's output: the ordered mutation requests plus the
// classification counts they imply. Creates and updates come first in
// feed order, deletes last in calendar order, so the executor's
// rate-limited calls proceed deterministically.
type Plan struct {
	// Actions contains the planned mutations in execution order.
	Actions []Action `json:"actions"`

	// Result holds the classification counts. The Failed count is zero
	// in a plan; Apply fills it in on its own copy.
	Result Result `json:"result"`
}

// Options controls the apply phase.
type Options struct {
	// DryRun prevents execution of any mutation if true.
	DryRun bool

	// Confirmed indicates the caller has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool

	// Delay is the minimum pause between consecutive calendar calls.
	Delay time.Duration
}
