// Package loader provides the feature loading system.
//
// Features (feature/schedule today, anything added later) implement the
// Feature interface and register their routes through it:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager collects registered features and LoadAll mounts the
// enabled ones onto the Fiber app in registration order. A disabled
// feature is skipped entirely, so a deployment that only wants the
// metrics endpoint can turn the schedule surface off without code
// changes.
package loader
