package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (cli *commandLine) fafsaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "fafsa enable|disable",
		Short:     "Turn the financial aid calculator on or off",
		ValidArgs: []string{"enable", "disable"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usage(cmd)
			}

			var enabled bool
			switch args[0] {
			case "enable":
				enabled = true
			case "disable":
			default:
				return usage(cmd)
			}

			settings, err := cli.courseSvc.SetFAFSAEnabled(cmd.Context(), enabled)
			if err != nil {
				return errors.Wrap(err, "setting FAFSA calculator")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "FAFSA calculator %s.\n", enabledText(settings.FAFSAEnabled))
			return nil
		},
	}
}
