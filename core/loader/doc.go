// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which names the feature,
// reports whether it is enabled and registers its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry. Register adds a feature; LoadAll loads the
// enabled ones in registration order and stops at the first failure.
package loader
