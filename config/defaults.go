package config

import "github.com/spf13/viper"

// DefaultDebounceMS is the default quiet period before glbind watch regenerates.
const DefaultDebounceMS = 200

// SetDefaults configures default values for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("registry.path", "")
	v.SetDefault("registry.api", "gl")
	v.SetDefault("registry.version", "")
	v.SetDefault("registry.profile", "core")
	v.SetDefault("registry.fallbacks", "all")
	v.SetDefault("registry.extensions", []string{})

	v.SetDefault("output.path", "")
	v.SetDefault("output.package", "")
	v.SetDefault("output.namespace", "")
	v.SetDefault("output.format", true)
	v.SetDefault("output.bitmask_ops", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}

// Default returns the configuration SetDefaults describes.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{API: "gl", Profile: "core", Fallbacks: "all", Extensions: []string{}},
		Output:   OutputConfig{Format: true},
		Watch:    WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}
