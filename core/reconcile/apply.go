package reconcile

import (
	"context"
	"time"

	"rinksync/core/event"

	"go.uber.org/zap"
)

// Mutator performs the calendar mutations a plan requests. Implemented
// by the Google Calendar client; mocked in tests.
type Mutator interface {
	// Create inserts the desired event. Ref is unset.
	Create(ctx context.Context, desired event.Target) error
	// Update rewrites the event addressed by desired.Ref in place.
	Update(ctx context.Context, desired event.Target) error
	// Delete removes the event addressed by desired.Ref.
	Delete(ctx context.Context, desired event.Target) error
}

// Apply executes the plan's actions in order against the mutator,
// pausing opts.Delay between consecutive calls to respect the calendar's
// rate limits. A failed call is logged and counted but does not abort
// the run; the returned Result is the plan's result with Failed filled
// in. Nothing executes unless opts.Confirmed is set and opts.DryRun is
// not, mirroring the plan/apply split: classification never mutates.
func Apply(ctx context.Context, mutator Mutator, plan *Plan, opts Options, logger *zap.Logger) (Result, error) {
	result := plan.Result

	if !opts.Confirmed || opts.DryRun {
		return result, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, action := range plan.Actions {
		if i > 0 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}

		var err error
		switch action.Type {
		case ActionCreate:
			err = mutator.Create(ctx, action.Desired)
		case ActionUpdate:
			err = mutator.Update(ctx, action.Desired)
		case ActionDelete:
			err = mutator.Delete(ctx, action.Desired)
		}

		if err != nil {
			result.Failed++
			logger.Error("calendar mutation failed",
				zap.String("type", string(action.Type)),
				zap.String("identity", action.Identity),
				zap.String("title", action.Desired.Title),
				zap.Error(err),
			)
			continue
		}

		logger.Debug("calendar mutation applied",
			zap.String("type", string(action.Type)),
			zap.String("identity", action.Identity),
			zap.String("title", action.Desired.Title),
		)
	}

	return result, nil
}
