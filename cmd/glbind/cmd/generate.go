package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glbind/bindgen"
	"github.com/teranos/glbind/config"
	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
	"github.com/teranos/glbind/registry"
)

// build is the result of one generation run.
type build struct {
	reg *registry.Registry
	src []byte
}

// newGenerator configures a StructGenerator from the output section.
func newGenerator(cfg *config.Config) *bindgen.StructGenerator {
	gen := bindgen.NewStructGenerator(cfg.Output.Package)
	gen.Namespace = cfg.Output.Namespace
	if cfg.Output.BitmaskOps {
		gen.Hooks = bindgen.BitmaskOps{}
	}
	return gen
}

// loadRegistry reads the registry document and selects the configured slice of it.
func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Registry.Path == "" {
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("no registry document configured"),
			"pass --registry or set registry.path in glbind.toml")
	}

	start := time.Now()
	doc, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Registry loaded",
		logger.FieldStage, "load",
		logger.FieldPath, cfg.Registry.Path,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	start = time.Now()
	reg, err := registry.Select(doc, cfg.Identity(), cfg.Registry.Extensions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to select %s", cfg.Identity())
	}
	logger.Debugw("Registry selected",
		logger.FieldStage, "select",
		logger.FieldAPI, reg.API,
		logger.FieldEnums, len(reg.Enums),
		logger.FieldCommands, len(reg.Cmds),
		logger.FieldGroups, len(reg.Groups),
		logger.FieldAliases, len(reg.Aliases),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	if !reg.API.IsKnown() {
		logger.Warnw("Unknown API, using GL primitive types and unprefixed symbol names",
			logger.FieldAPI, reg.API)
	}
	return reg, nil
}

// render produces the generated source in memory, formatted when configured.
func render(cfg *config.Config) (*build, error) {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := newGenerator(cfg).Write(&buf, reg); err != nil {
		return nil, err
	}
	src := buf.Bytes()
	logger.Debugw("Bindings generated",
		logger.FieldStage, "generate",
		logger.FieldBytes, len(src),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	if cfg.Output.Format {
		start = time.Now()
		src, err = bindgen.Format(outputName(cfg), src)
		if err != nil {
			return nil, err
		}
		logger.Debugw("Bindings formatted",
			logger.FieldStage, "format",
			logger.FieldBytes, len(src),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}

	return &build{reg: reg, src: src}, nil
}

func outputName(cfg *config.Config) string {
	if cfg.WritesStdout() {
		return "bindings.go"
	}
	return filepath.Base(cfg.Output.Path)
}

// runGenerate is the root command: generate and write the bindings.
func (a *app) runGenerate(cmd *cobra.Command) error {
	start := time.Now()
	cfg := a.cfg

	if logger.ShouldOutput(cfg.Log.Verbosity, logger.OutputProgress) {
		pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("Generating %s bindings from %s", cfg.Identity(), cfg.Registry.Path)
	}
	if file := a.v.ConfigFileUsed(); file != "" && logger.ShouldOutput(cfg.Log.Verbosity, logger.OutputConfig) {
		pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("Using config %s", file)
	}

	var (
		reg     *registry.Registry
		written int
		err     error
	)
	if cfg.Output.Format {
		var b *build
		if b, err = render(cfg); err != nil {
			return err
		}
		reg = b.reg
		written = len(b.src)
		err = writeOutput(cmd, cfg, func(w io.Writer) error {
			_, werr := w.Write(b.src)
			return werr
		})
	} else {
		// Unformatted output streams straight into the destination.
		if reg, err = loadRegistry(cfg); err != nil {
			return err
		}
		err = writeOutput(cmd, cfg, func(w io.Writer) error {
			cw := &countingWriter{w: w}
			werr := newGenerator(cfg).Write(cw, reg)
			written = cw.n
			return werr
		})
	}
	if err != nil {
		return err
	}

	report(cmd, cfg, reg, written, time.Since(start))
	return nil
}

// writeOutput hands fn the configured destination: stdout, or a file that is
// created (with its directory) and closed afterwards.
func writeOutput(cmd *cobra.Command, cfg *config.Config, fn func(io.Writer) error) error {
	if cfg.WritesStdout() {
		return fn(cmd.OutOrStdout())
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output.Path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory for %s", cfg.Output.Path)
	}
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", cfg.Output.Path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", cfg.Output.Path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", cfg.Output.Path)
	}
	return nil
}

// report prints the user-facing summary on stderr so it never mixes with
// source written to stdout.
func report(cmd *cobra.Command, cfg *config.Config, reg *registry.Registry, size int, elapsed time.Duration) {
	verbosity := cfg.Log.Verbosity
	stderr := cmd.ErrOrStderr()

	if logger.ShouldOutput(verbosity, logger.OutputRegistryStats) {
		pterm.Info.WithWriter(stderr).Printfln("%s: %d enums, %d commands, %d groups, %d commands with fallbacks",
			reg.Identity, len(reg.Enums), len(reg.Cmds), len(reg.Groups), len(reg.Aliases))
	}
	if logger.ShouldOutput(verbosity, logger.OutputGroupDetail) {
		known := reg.EnumSet()
		for _, name := range reg.GroupNames() {
			g := reg.Groups[name]
			if dropped := len(g.Enums) - len(bindgen.PartitionGroup(g, known)); dropped > 0 {
				pterm.Info.WithWriter(stderr).Printfln("group %s: %d of %d members skipped (unknown or repeated)", name, dropped, len(g.Enums))
			}
		}
	}
	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		pterm.Info.WithWriter(stderr).Printfln("Generated %d bytes in %s", size, elapsed.Round(time.Millisecond))
	}
	if !cfg.WritesStdout() && logger.ShouldOutput(verbosity, logger.OutputResults) {
		pterm.Success.WithWriter(stderr).Printfln("Generated %s (%s)", cfg.Output.Path, reg.Identity)
	}
}

// countingWriter counts the bytes that pass through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
