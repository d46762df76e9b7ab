package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glbind/config"
	"github.com/teranos/glbind/errors"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write glbind.toml from the current flags",
		Long: `Write a glbind.toml holding the defaults overridden by any flags given, so
later runs need no flags. Writes to --config when set, else ./glbind.toml.

An existing file is only replaced with --force; the previous content is kept
as glbind.toml.back1 (up to three backups).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configFile
			if path == "" {
				path = config.FileName
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(
					errors.Newf("%s already exists", path),
					"pass --force to overwrite it (a backup is kept)")
			}

			if err := config.Save(path, a.cfg); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
