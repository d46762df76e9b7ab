package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glbind/bindgen"
	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the generated file matches the registry",
		Long: `Regenerate the bindings in memory and compare them with the output file.

Exits non-zero when the file is missing or differs, printing a line diff.
The generator version line in the header is ignored, so upgrading glbind
alone does not make a file stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
}

func (a *app) runCheck(cmd *cobra.Command) error {
	cfg := a.cfg
	if cfg.WritesStdout() {
		return errors.WithHint(
			errors.NewInvalidConfigError("check needs an output file"),
			"pass --output or set output.path in glbind.toml")
	}

	b, err := render(cfg)
	if err != nil {
		return err
	}

	res, err := bindgen.Check(cfg.Output.Path, b.src)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if res.UpToDate {
		if logger.ShouldOutput(cfg.Log.Verbosity, logger.OutputUserStatus) {
			pterm.Success.WithWriter(stderr).Printfln("%s is up to date", cfg.Output.Path)
		}
		return nil
	}

	if res.Diff != "" {
		pterm.Warning.WithWriter(stderr).Printfln("%s differs from a fresh generation:", cfg.Output.Path)
		pterm.Fprintln(stderr, res.Diff)
	}
	return res.Err(cfg.Output.Path)
}
