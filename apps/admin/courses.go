package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
)

type (
	// coursesFile is the TOML layout read by `courses import` and written by `courses list --toml`.
	coursesFile struct {
		FAFSAEnabled *bool        `toml:"fafsa_enabled,omitempty"`
		Courses      []courseItem `toml:"courses"`
	}

	courseItem struct {
		Key           string `toml:"key"`
		Name          string `toml:"name"`
		Price         int64  `toml:"price"`
		Hours         int64  `toml:"hours"`
		BooksPrice    int64  `toml:"books_price"`
		SuppliesPrice int64  `toml:"supplies_price"`
		OtherPrice    int64  `toml:"other_price"`
		OtherLabel    string `toml:"other_label,omitempty"`
	}
)

func (cli *commandLine) coursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage the course catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return usage(cmd)
		},
	}
	cmd.AddCommand(cli.coursesListCmd(), cli.coursesImportCmd())
	return cmd
}

func (cli *commandLine) coursesListCmd() *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := cli.courseSvc.Settings(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "getting settings")
			}
			out := cmd.OutOrStdout()

			if asTOML {
				return errors.Wrap(toml.NewEncoder(out).Encode(newCoursesFile(settings)), "encoding courses")
			}

			if len(settings.Courses) == 0 {
				_, _ = fmt.Fprintln(out, "(no courses configured)")
			} else {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "KEY\tNAME\tPRICE\tHOURS\tBOOKS\tSUPPLIES\tOTHER\tTOTAL")
				for _, c := range settings.Courses.List() {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d (%s)\t%d\n",
						c.Key, c.Name, c.Price, c.Hours, c.BooksPrice, c.SuppliesPrice, c.OtherPrice, c.OtherLabel, c.TotalProgramCost())
				}
				if err = w.Flush(); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(out, "\nFAFSA calculator: %s\n", enabledText(settings.FAFSAEnabled))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print the courses in the `courses import` format")
	return cmd
}

func (cli *commandLine) coursesImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import -f FILE.toml",
		Short: "Replace the course catalog with the courses of a TOML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return usage(cmd)
			}

			var data coursesFile
			md, err := toml.DecodeFile(file, &data)
			if err != nil {
				return errors.Wrapf(err, "reading %s", file)
			}
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, 0, len(undecoded))
				for _, k := range undecoded {
					keys = append(keys, k.String())
				}
				return errors.Errorf("reading %s: unknown keys %s", file, strings.Join(keys, ", "))
			}

			ctx := cmd.Context()
			us := data.updateSettings()
			if data.FAFSAEnabled == nil {
				enabled, err := cli.courseSvc.FAFSAEnabled(ctx)
				if err != nil {
					return errors.Wrap(err, "getting FAFSA calculator status")
				}
				us.FAFSAEnabled = enabled
			}
			if err = us.Validate(cli.validate); err != nil {
				return formatValidationError(core.TranslateValidationErrors(err, cli.translator))
			}

			settings, err := cli.courseSvc.Save(ctx, us)
			if err != nil {
				return errors.Wrap(err, "saving settings")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d courses.\n", len(settings.Courses))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "TOML file holding [[courses]] tables")
	return cmd
}

func newCoursesFile(settings course.Settings) coursesFile {
	enabled := settings.FAFSAEnabled
	data := coursesFile{FAFSAEnabled: &enabled}
	for _, c := range settings.Courses.List() {
		data.Courses = append(data.Courses, courseItem(c))
	}
	return data
}

func (f coursesFile) updateSettings() course.UpdateSettings {
	us := course.UpdateSettings{Courses: make([]course.UpdateCourse, 0, len(f.Courses))}
	if f.FAFSAEnabled != nil {
		us.FAFSAEnabled = *f.FAFSAEnabled
	}
	for _, c := range f.Courses {
		us.Courses = append(us.Courses, course.UpdateCourse(c))
	}
	return us
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
