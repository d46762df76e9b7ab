package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/glbind/errors"
)

// FileName is the project configuration file glbind looks for.
const FileName = "glbind.toml"

// EnvPrefix prefixes environment overrides, e.g. GLBIND_REGISTRY_API.
const EnvPrefix = "GLBIND"

// NewViper builds a viper instance with defaults, environment bindings and,
// when found, the configuration file. configFile overrides the search; an
// explicit file that does not exist is an error, a missing project file is not.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	path := configFile
	if path == "" {
		wd, err := os.Getwd()
		if err == nil {
			path = FindProjectConfig(wd)
		}
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.WithHint(
			errors.NewNotFoundError("config file %s", path),
			"run 'glbind init' to create one")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "failed to read config file %s", path), errors.ErrInvalidConfig)
		}
	}

	return v, nil
}

// FindProjectConfig walks up from dir looking for glbind.toml and returns its
// path, or "" when there is none.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// Unmarshal decodes and validates the configuration held by v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal config"), errors.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is NewViper followed by Unmarshal.
func Load(configFile string) (*Config, *viper.Viper, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := Unmarshal(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}
