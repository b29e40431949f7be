package main

import (
	"fmt"

	"github.com/spf13/cobra"

	echoapi "github.com/beautyschool/calculator/apps/api/echo"
)

func (cli *commandLine) tokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token --subject NAME",
		Short: "Issue an admin token for the settings API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subject == "" {
				return usage(cmd)
			}
			token, err := echoapi.GenerateToken(echoapi.NewAdminClaims(subject, cli.conf), cli.conf.SecretKey)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Who the token is issued to")
	return cmd
}
