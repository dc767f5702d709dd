package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/laiba166-shaikh/AI-400-task-manager/internal/scaffold"
)

var (
	errMissingArgument    = errors.New("missing argument")
	errUnexpectedArgument = errors.New("unexpected argument")

	forceFlag = &cli.BoolFlag{
		Name:  "force",
		Usage: "overwrite existing files",
	}
	moduleFlag = &cli.StringFlag{
		Name:  "module",
		Usage: "module path generated imports refer to",
	}
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("scaffold failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "scaffold",
		Usage: "generate boilerplate for resources, tests, migrations and starter projects",
		Commands: []*cli.Command{
			crudCommand(),
			testgenCommand(),
			migrationCommand(),
			testsCommand(),
			newCommand(),
		},
	}
}

// run accepts flags on either side of the positional arguments.
func run(args []string) error {
	app := newApp()

	return app.Run(hoistFlags(args, app.Commands)) //nolint:wrapcheck
}

func arg(c *cli.Context, index int, name string) (string, error) {
	value := c.Args().Get(index)
	if value == "" {
		return "", fmt.Errorf("%w: %s (usage: %s [options] %s)", errMissingArgument, name, c.Command.Name, c.Command.ArgsUsage)
	}

	return value, nil
}

func report(written []string) {
	for _, path := range written {
		log.Info().Str("path", path).Msg("generated")
	}
}

func crudCommand() *cli.Command {
	return &cli.Command{
		Name:      "crud",
		Usage:     "model, shapes, repository, service and handler for a resource",
		ArgsUsage: "<Resource>",
		Before:    expectArgs(1),
		Flags: []cli.Flag{
			moduleFlag,
			&cli.StringFlag{Name: "out", Usage: "repository root to write into; prints to stdout when empty"},
			forceFlag,
		},
		Action: func(c *cli.Context) error {
			name, err := arg(c, 0, "resource")
			if err != nil {
				return err
			}

			res, err := scaffold.NewResource(name, c.String("module"))
			if err != nil {
				return err
			}

			files, err := scaffold.CRUD(res)
			if err != nil {
				return err
			}

			if c.String("out") == "" {
				return scaffold.Print(c.App.Writer, files)
			}

			written, err := scaffold.Write(c.String("out"), files, c.Bool("force"))
			report(written)

			if err == nil {
				log.Info().Msgf("register %s.New and its repository/service in di/wire.go and router.DomainHandlers", res.Package)
			}

			return err
		},
	}
}

func testgenCommand() *cli.Command {
	return &cli.Command{
		Name:      "testgen",
		Usage:     "testify test skeleton for the exported functions and types of a Go file",
		ArgsUsage: "<file.go>",
		Before:    expectArgs(1),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "test file path (default <dir>/<name>_test.go)"},
			forceFlag,
		},
		Action: func(c *cli.Context) error {
			source, err := arg(c, 0, "source file")
			if err != nil {
				return err
			}

			file, err := scaffold.TestSkeleton(source, c.String("output"))
			if err != nil {
				return err
			}

			written, err := scaffold.Write("", []scaffold.File{file}, c.Bool("force"))
			report(written)

			return err
		},
	}
}

func migrationCommand() *cli.Command {
	return &cli.Command{
		Name:      "migration",
		Usage:     "next numbered golang-migrate up/down pair creating a resource table",
		ArgsUsage: "<Resource>",
		Before:    expectArgs(1),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dialect", Value: scaffold.DialectPostgres, Usage: "postgres or sqlite"},
			&cli.StringFlag{Name: "dir", Usage: "migrations directory (default migrations/<dialect>)"},
			forceFlag,
		},
		Action: func(c *cli.Context) error {
			name, err := arg(c, 0, "resource")
			if err != nil {
				return err
			}

			res, err := scaffold.NewResource(name, "")
			if err != nil {
				return err
			}

			dir := c.String("dir")
			if dir == "" {
				dir = filepath.Join("migrations", c.String("dialect"))
			}

			files, err := scaffold.Migration(res, c.String("dialect"), dir)
			if err != nil {
				return err
			}

			written, err := scaffold.Write(dir, files, c.Bool("force"))
			report(written)

			return err
		},
	}
}

func testsCommand() *cli.Command {
	return &cli.Command{
		Name:      "tests",
		Usage:     "TestMain, an example table-driven test and a testdata directory for a package",
		ArgsUsage: "<pkgdir>",
		Before:    expectArgs(1),
		Flags:     []cli.Flag{forceFlag},
		Action: func(c *cli.Context) error {
			dir, err := arg(c, 0, "package directory")
			if err != nil {
				return err
			}

			files, err := scaffold.TestSuite(dir)
			if err != nil {
				return err
			}

			written, skipped, err := scaffold.WriteMissing(dir, files, c.Bool("force"))
			report(written)

			for _, path := range skipped {
				log.Warn().Str("path", path).Msg("exists, skipped")
			}

			return err
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "starter project (" + strings.Join(scaffold.ProjectKinds(), ", ") + ")",
		ArgsUsage: "<kind> <dir>",
		Before:    expectArgs(2),
		Flags:     []cli.Flag{moduleFlag, forceFlag},
		Action: func(c *cli.Context) error {
			kind, err := arg(c, 0, "kind")
			if err != nil {
				return err
			}

			dir, err := arg(c, 1, "dir")
			if err != nil {
				return err
			}

			module := c.String("module")
			if module == "" {
				module = filepath.Base(filepath.Clean(dir))
			}

			files, err := scaffold.Project(kind, module)
			if err != nil {
				return err
			}

			written, err := scaffold.Write(dir, files, c.Bool("force"))
			report(written)

			return err
		},
	}
}
