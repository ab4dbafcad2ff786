package reconcile

import (
	"fmt"

	"rinksync/core/event"

	"go.uber.org/zap"
)

// Engine plans reconciliation runs. Construct it once with the managed
// prefix and tolerances; Plan itself is stateless and side-effect free.
type Engine struct {
	scheme   Scheme
	detector Detector
	prefix   string
	logger   *zap.Logger
}

// NewEngine creates an engine. An invalid scheme falls back to fnv64.
func NewEngine(scheme Scheme, detector Detector, logger *zap.Logger) *Engine {
	if !scheme.Valid() {
		scheme = SchemeFNV64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		scheme:   scheme,
		detector: detector,
		prefix:   detector.Prefix,
		logger:   logger,
	}
}

// Plan classifies every source and target event into exactly one of
// create / update / migrate / unchanged / delete and returns the ordered
// mutation requests. It never touches the calendar: callers apply the
// plan separately, and only after a successful feed load.
func (e *Engine) Plan(sources []event.Source, targets []event.Target) *Plan {
	plan := &Plan{Actions: []Action{}}

	// Annotate sources with derived identities. Events without the
	// required fields were dropped at parse time; skip any stragglers.
	annotated := make([]event.Source, 0, len(sources))
	for _, src := range sources {
		if !src.Valid() {
			continue
		}
		src.Identity = Derive(e.scheme, src.Title, src.Start, src.Location)
		annotated = append(annotated, src)
	}

	// Index sources by identity, last one wins on collision. The loser
	// still protects matching targets through the content key below.
	srcByIdentity := make(map[string]int, len(annotated))
	srcContentKeys := make(map[string]struct{}, len(annotated))
	for i, src := range annotated {
		if prev, dup := srcByIdentity[src.Identity]; dup {
			plan.Result.SourceCollisions++
			e.logger.Warn("source identity collision",
				zap.String("identity", src.Identity),
				zap.String("kept", src.Title),
				zap.String("dropped", annotated[prev].Title),
			)
		}
		srcByIdentity[src.Identity] = i
		srcContentKeys[ContentKey("", src.Title, src.Start, src.Location)] = struct{}{}
	}

	// Index targets by recovered identity and by content key.
	tgtByIdentity := make(map[string]int, len(targets))
	tgtByContentKey := make(map[string]int, len(targets))
	for i, tgt := range targets {
		if tgt.Identity != "" {
			tgtByIdentity[tgt.Identity] = i
		}
		tgtByContentKey[ContentKey(e.prefix, tgt.Title, tgt.Start, tgt.Location)] = i
	}

	claimed := make(map[int]struct{}, len(targets))

	// Pass 1: walk sources in feed order; identity lookup first, content
	// key as the migration fallback.
	for i, src := range annotated {
		if srcByIdentity[src.Identity] != i {
			continue // collision loser, superseded above
		}

		tgtIdx, found := tgtByIdentity[src.Identity]
		migrated := false
		if !found {
			tgtIdx, found = tgtByContentKey[ContentKey("", src.Title, src.Start, src.Location)]
			migrated = found
		}

		if !found {
			plan.Result.Created++
			plan.Actions = append(plan.Actions, Action{
				Type:     ActionCreate,
				Identity: src.Identity,
				Desired:  e.project(src),
				Reason:   "no matching calendar event",
			})
			continue
		}

		claimed[tgtIdx] = struct{}{}
		tgt := targets[tgtIdx]

		switch {
		case migrated:
			plan.Result.Migrated++
			desired := e.project(src)
			desired.Ref = tgt.Ref
			plan.Actions = append(plan.Actions, Action{
				Type:     ActionUpdate,
				Identity: src.Identity,
				Desired:  desired,
				Migrated: true,
				Reason:   fmt.Sprintf("content key match, stored identity %q superseded", tgt.Identity),
			})
		case e.detector.NeedsUpdate(tgt, src):
			plan.Result.Updated++
			desired := e.project(src)
			desired.Ref = tgt.Ref
			plan.Actions = append(plan.Actions, Action{
				Type:     ActionUpdate,
				Identity: src.Identity,
				Desired:  desired,
				Reason:   "managed fields drifted from feed",
			})
		default:
			plan.Result.Unchanged++
		}
	}

	// Pass 2: walk targets in calendar order; anything unclaimed and
	// unprotected by either key is removed. Identity match and content
	// match are independent rescue paths.
	for i, tgt := range targets {
		if _, ok := claimed[i]; ok {
			continue
		}

		_, idProtected := srcByIdentity[tgt.Identity]
		_, keyProtected := srcContentKeys[ContentKey(e.prefix, tgt.Title, tgt.Start, tgt.Location)]
		if idProtected || keyProtected {
			// A second calendar event claiming the same feed event. Left
			// alone rather than deleted; surfaced through the counter.
			plan.Result.Unchanged++
			plan.Result.DuplicateTargets++
			e.logger.Warn("duplicate managed event left in place",
				zap.String("title", tgt.Title),
				zap.String("ref", tgt.Ref),
			)
			continue
		}

		plan.Result.Removed++
		plan.Actions = append(plan.Actions, Action{
			Type:     ActionDelete,
			Identity: tgt.Identity,
			Desired:  tgt,
			Reason:   "no feed event matches either key",
		})
	}

	return plan
}

// project computes the calendar event a source event should become.
func (e *Engine) project(src event.Source) event.Target {
	return event.Target{
		Title:       e.prefix + src.Title,
		Start:       src.Start,
		End:         src.EndOrDefault(),
		Location:    src.Location,
		Description: event.ComposeDescription(src.Description, src.Identity),
		Identity:    src.Identity,
	}
}
