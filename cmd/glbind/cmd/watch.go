package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glbind/config"
	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the registry or glbind.toml changes",
		Long: `Generate once, then watch the registry document and the configuration file
and regenerate after each burst of changes settles (watch.debounce_ms).

A failed regeneration is reported and watching continues. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd)
		},
	}
}

func (a *app) runWatch(cmd *cobra.Command) error {
	if a.cfg.WritesStdout() {
		return errors.WithHint(
			errors.NewInvalidConfigError("watch needs an output file"),
			"pass --output or set output.path in glbind.toml")
	}
	if err := a.runGenerate(cmd); err != nil {
		return err
	}

	configFile := a.v.ConfigFileUsed()
	registryPath := a.cfg.Registry.Path
	debounce := time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond

	w, err := config.NewWatcher(debounce, configFile, registryPath)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(path string) error {
		if sameFile(path, configFile) {
			if err := a.load(cmd); err != nil {
				printError(cmd, err)
				return err
			}
			if a.cfg.Registry.Path != registryPath {
				logger.Warnw("Registry path changed; restart glbind watch to follow it",
					logger.FieldPath, a.cfg.Registry.Path)
			}
		}
		if err := a.runGenerate(cmd); err != nil {
			printError(cmd, err)
			return err
		}
		return nil
	})
	w.Start()

	pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("Watching %s", registryPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func printError(cmd *cobra.Command, err error) {
	stderr := cmd.ErrOrStderr()
	pterm.Error.WithWriter(stderr).Println(err.Error())
	if hint := errors.FlattenHints(err); hint != "" {
		pterm.Fprintln(stderr, "  "+hint)
	}
}
