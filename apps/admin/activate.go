package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beautyschool/calculator/storage/database"
)

func (cli *commandLine) activateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Migrate the database and seed the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(cli.db, cli.conf); err != nil {
				return err
			}
			if err := cli.courseSvc.Activate(cmd.Context(), cli.conf.Build); err != nil {
				return errors.Wrap(err, "activating")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Default settings added.")
			return nil
		},
	}
}
