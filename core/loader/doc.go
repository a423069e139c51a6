// Package loader registers HTTP features on the Fiber app.
//
// Each feature implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers the catalog and verify features on a Manager
// and calls LoadAll once middleware is in place. Disabled features are
// skipped.
package loader
