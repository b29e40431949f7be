package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sqlx.DB
	conf       *core.Config
	courseSvc  *course.Service
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]        - run a goose migration command (up, down, status, ...)")
	_, _ = fmt.Fprintln(cli.out, "  activate                      - seed the default courses without overwriting saved settings")
	_, _ = fmt.Fprintln(cli.out, "  courses list [--toml]         - list the configured courses")
	_, _ = fmt.Fprintln(cli.out, "  courses import -f FILE.toml   - replace the courses with the ones in FILE.toml")
	_, _ = fmt.Fprintln(cli.out, "  fafsa enable|disable          - turn the financial aid calculator on or off")
	_, _ = fmt.Fprintln(cli.out, "  token --subject NAME          - issue an admin API token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Beauty school calculator administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.SetArgs(args[1:])

	root.AddCommand(
		cli.migrateCmd(),
		cli.activateCmd(),
		cli.coursesCmd(),
		cli.fafsaCmd(),
		cli.tokenCmd(),
	)
	return root.ExecuteContext(context.Background())
}

// usage prints the command help and returns errHelp.
func usage(cmd *cobra.Command) error {
	_ = cmd.Usage()
	return errHelp
}

// formatValidationError lists the field errors of a *core.ValidationError, one per line.
func formatValidationError(err error) error {
	vErr, ok := core.AsValidationError(err)
	if !ok || len(vErr.Fields) == 0 {
		return err
	}
	lines := make([]string, 0, len(vErr.Fields))
	for fld, msg := range vErr.FieldMap() {
		lines = append(lines, fld+": "+msg)
	}
	sort.Strings(lines)
	return errors.New("invalid settings:\n  " + strings.Join(lines, "\n  "))
}
