package config

import (
	"go/token"

	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/registry"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Registry.API == "" {
		return errors.NewInvalidConfigError("registry.api cannot be empty")
	}

	// Unknown APIs are allowed; they get identity symbol names.
	if c.Registry.Version != "" {
		if _, err := registry.ParseVersion(c.Registry.Version); err != nil {
			return errors.Mark(errors.Wrap(err, "registry.version"), errors.ErrInvalidConfig)
		}
	}

	switch registry.Profile(c.Registry.Profile) {
	case "", registry.ProfileCore, registry.ProfileCompatibility:
	default:
		return errors.NewInvalidConfigError("registry.profile must be core or compatibility, got %q", c.Registry.Profile)
	}

	switch registry.Fallbacks(c.Registry.Fallbacks) {
	case "", registry.FallbacksAll, registry.FallbacksNone:
	default:
		return errors.NewInvalidConfigError("registry.fallbacks must be all or none, got %q", c.Registry.Fallbacks)
	}

	if c.Output.Package != "" && (!token.IsIdentifier(c.Output.Package) || c.Output.Package == "_") {
		return errors.NewInvalidConfigError("output.package %q is not a valid package name", c.Output.Package)
	}

	if c.Log.Verbosity < 0 {
		return errors.NewInvalidConfigError("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.NewInvalidConfigError("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
