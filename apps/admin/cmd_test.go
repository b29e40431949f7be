package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/beautyschool/calculator/apps/api/echo"
	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
	"github.com/beautyschool/calculator/storage/database"
	"github.com/beautyschool/calculator/storage/database/sqlx"
	"github.com/beautyschool/calculator/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := testutil.NewConfig(t)
	db, err := database.Setup(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	out := new(bytes.Buffer)
	return &commandLine{
		db:         db,
		conf:       conf,
		courseSvc:  course.NewService(sqlxrepos.NewSettingsRepository(db), nil, testutil.NewLogger()),
		validate:   validate,
		translator: translator,
		out:        out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func (tt cliTest) check(t *testing.T, cli *commandLine, out *bytes.Buffer) {
	out.Reset()
	err := cli.run(append([]string{"admin"}, tt.args...))
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), tt.wantErrStr)
		}
	default:
		assert.NoError(t, err)
	}
	if tt.wantOut != "" {
		assert.Contains(t, out.String(), tt.wantOut)
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command", args: []string{"lol"}, wantErrStr: `unknown command "lol" for "admin"`},
		{name: "courses without subcommand", args: []string{"courses"}, wantErr: errHelp},
		{name: "fafsa without args", args: []string{"fafsa"}, wantErr: errHelp},
		{name: "fafsa unknown arg", args: []string{"fafsa", "lol"}, wantErr: errHelp},
		{name: "token without subject", args: []string{"token"}, wantErr: errHelp},
		{name: "import without file", args: []string{"courses", "import"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t)

	origRunFunc := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = origRunFunc })
	gooseRunFunc = func(db *sqlx.DB, conf *core.Config, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}
}

func Test_commandLine_migrateStatus(t *testing.T) {
	cli, out := setup(t)

	cliTest{args: []string{"migrate", "status"}}.check(t, cli, out)
}

func Test_commandLine_activate(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	cliTest{args: []string{"activate"}, wantOut: "Default settings added."}.check(t, cli, out)

	settings, err := cli.courseSvc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, course.DefaultCourses(), settings.Courses)
	assert.True(t, settings.FAFSAEnabled)
	assert.Equal(t, cli.conf.Build, settings.Version)

	cliTest{args: []string{"courses", "list"}, wantOut: "FAFSA calculator: enabled"}.check(t, cli, out)
	for _, want := range []string{"barbering", "Esthetics (Skincare)", "Massage Therapy", "16250"} {
		assert.Contains(t, out.String(), want)
	}
	assert.Less(t, strings.Index(out.String(), "barbering"), strings.Index(out.String(), "cosmetology"), "ordered by key")

	cliTest{args: []string{"activate", "lol"}, wantErrStr: `unknown command "lol" for "admin activate"`}.check(t, cli, out)
}

func Test_commandLine_fafsa(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()
	require.NoError(t, cli.courseSvc.Activate(ctx, "test"))

	cliTest{args: []string{"fafsa", "disable"}, wantOut: "FAFSA calculator disabled."}.check(t, cli, out)
	enabled, err := cli.courseSvc.FAFSAEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	courses, err := cli.courseSvc.Courses(ctx)
	require.NoError(t, err)
	assert.Equal(t, course.DefaultCourses(), courses, "courses are kept")

	cliTest{args: []string{"fafsa", "enable"}, wantOut: "FAFSA calculator enabled."}.check(t, cli, out)
	enabled, err = cli.courseSvc.FAFSAEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func Test_commandLine_coursesImport(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()
	require.NoError(t, cli.courseSvc.Activate(ctx, "test"))

	writeFile := func(name, content string) string {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	valid := writeFile("courses.toml", `
[[courses]]
key = "nails"
name = "Nail Technology"
price = 3000
hours = 350
books_price = 120
supplies_price = 250
other_price = 75
other_label = "Kit"

[[courses]]
key = "Lash Extensions"
name = "Lash Extensions"
price = 900
`)
	invalid := writeFile("invalid.toml", `
[[courses]]
key = "nails"
name = ""
price = -1
`)
	tooExpensive := writeFile("expensive.toml", `
[[courses]]
key = "nails"
name = "Nails"
price = 9223372036854775807
books_price = 500
`)
	unknownKeys := writeFile("unknown.toml", `
[[courses]]
key = "nails"
name = "Nails"
cost = 10
`)

	tests := []cliTest{
		{name: "missing file", args: []string{"courses", "import", "-f", filepath.Join(t.TempDir(), "lol.toml")}, wantErrStr: "no such file or directory"},
		{name: "malformed file", args: []string{"courses", "import", "-f", writeFile("bad.toml", "[[courses]\n")}, wantErrStr: "reading"},
		{name: "unknown keys", args: []string{"courses", "import", "-f", unknownKeys}, wantErrStr: "unknown keys courses.cost"},
		{
			name: "invalid courses", args: []string{"courses", "import", "-f", invalid},
			wantErrStr: "invalid settings:\n  courses[0].name: this field is required\n  courses[0].price: price must be 0 or greater",
		},
		{
			name: "price out of range", args: []string{"courses", "import", "-f", tooExpensive},
			wantErrStr: "invalid settings:\n  courses[0].price: price must be 1,000,000,000 or less",
		},
		{name: "import", args: []string{"courses", "import", "--file", valid}, wantOut: "Imported 2 courses."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}

	settings, err := cli.courseSvc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lashextensions", "nails"}, settings.Courses.Keys())
	assert.Equal(t, course.DefaultOtherLabel, settings.Courses["lashextensions"].OtherLabel)
	assert.Equal(t, int64(3445), settings.Courses["nails"].TotalProgramCost())
	assert.True(t, settings.FAFSAEnabled, "kept when the file does not set it")

	// the --toml listing can be imported back
	cliTest{args: []string{"fafsa", "disable"}}.check(t, cli, out)
	cliTest{args: []string{"courses", "list", "--toml"}, wantOut: `fafsa_enabled = false`}.check(t, cli, out)
	exported := writeFile("exported.toml", out.String())

	require.NoError(t, cli.courseSvc.Activate(ctx, "test"))
	_, err = cli.courseSvc.Save(ctx, course.UpdateSettings{FAFSAEnabled: true})
	require.NoError(t, err)

	cliTest{args: []string{"courses", "import", "-f", exported}, wantOut: "Imported 2 courses."}.check(t, cli, out)
	reimported, err := cli.courseSvc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Courses, reimported.Courses)
	assert.False(t, reimported.FAFSAEnabled)
}

func Test_commandLine_token(t *testing.T) {
	cli, out := setup(t)

	cliTest{args: []string{"token", "--subject", "owner"}}.check(t, cli, out)

	claims := new(echoapi.Claims)
	_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cli.conf.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	assert.True(t, claims.IsAdmin)
}
