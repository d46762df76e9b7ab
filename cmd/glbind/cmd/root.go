// Package cmd implements the glbind command line.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/glbind/config"
	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
)

// app holds what the persistent pre-run loaded for the running command.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        *config.Config
}

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"registry":    "registry.path",
	"api":         "registry.api",
	"version":     "registry.version",
	"profile":     "registry.profile",
	"fallbacks":   "registry.fallbacks",
	"ext":         "registry.extensions",
	"output":      "output.path",
	"package":     "output.package",
	"namespace":   "output.namespace",
	"format":      "output.format",
	"bitmask-ops": "output.bitmask_ops",
	"json":        "log.json",
	"verbose":     "log.verbosity",
}

// NewRootCmd builds the glbind command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "glbind",
		Short: "Generate Go bindings for OpenGL-family C APIs",
		Long: `glbind generates a Go source file from an API registry document: typed
constant groups, a function pointer table with per-command fallbacks and a
LoadWith constructor that resolves every command through a caller-supplied
symbol lookup.

Settings come from glbind.toml (searched upwards from the working directory),
GLBIND_* environment variables and flags, in increasing precedence.

Examples:
  glbind --registry gl.yaml --api gl --version 4.5 --output gl/gl.go
  glbind check                 # Fail if the generated file is stale
  glbind watch                 # Regenerate when the registry changes
  glbind init                  # Write a glbind.toml with the current settings`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: glbind.toml in the working directory or a parent)")
	flags.String("registry", "", "registry document (.yaml, .yml, .toml or .json)")
	flags.String("api", "gl", "API to generate: gl, glcore, gles1, gles2, glsc2, glx, wgl, egl")
	flags.String("version", "", "highest feature version to include, e.g. 4.5")
	flags.String("profile", "core", "profile: core or compatibility")
	flags.String("fallbacks", "all", "fallback policy: all or none")
	flags.StringSlice("ext", nil, "extension to include (repeatable)")
	flags.StringP("output", "o", "", "generated file (default: stdout)")
	flags.String("package", "", "package clause of the generated file (default: derived from --api)")
	flags.String("namespace", "", "qualifier for group types in command signatures")
	flags.Bool("format", true, "gofmt the generated file")
	flags.Bool("bitmask-ops", false, "emit Contains/Insert/Remove on bitmask groups")
	flags.Bool("json", false, "log as JSON")
	flags.CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the glbind command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads configuration, applies flag overrides and initializes logging.
func (a *app) load(cmd *cobra.Command) error {
	file := a.configFile
	if cmd.Name() == "init" && file != "" {
		// init creates the file it is pointed at.
		if _, err := os.Stat(file); err != nil {
			file = ""
		}
	}

	v, err := config.NewViper(file)
	if err != nil {
		return err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return errors.Wrap(bindErr, "failed to bind flags")
	}

	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}
	if cmd.Name() != "init" {
		resolveConfigPaths(cmd, v, cfg)
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("Configuration loaded",
		logger.FieldPath, v.ConfigFileUsed(),
		logger.FieldAPI, cfg.Registry.API,
		logger.FieldVersion, cfg.Registry.Version,
		logger.FieldProfile, cfg.Registry.Profile)

	a.v = v
	a.cfg = cfg
	return nil
}

// resolveConfigPaths makes paths that came from the config file relative to
// that file's directory. Flag and environment values stay relative to the
// working directory.
func resolveConfigPaths(cmd *cobra.Command, v *viper.Viper, cfg *config.Config) {
	file := v.ConfigFileUsed()
	if file == "" {
		return
	}
	dir := filepath.Dir(file)

	resolve := func(flag, key, env string, p *string) {
		if *p == "" || *p == "-" || filepath.IsAbs(*p) {
			return
		}
		if cmd.Flags().Changed(flag) || !v.InConfig(key) {
			return
		}
		if _, set := os.LookupEnv(env); set {
			return
		}
		*p = filepath.Join(dir, *p)
	}
	resolve("registry", "registry.path", config.EnvPrefix+"_REGISTRY_PATH", &cfg.Registry.Path)
	resolve("output", "output.path", config.EnvPrefix+"_OUTPUT_PATH", &cfg.Output.Path)
}
