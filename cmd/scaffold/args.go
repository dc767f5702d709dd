package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"
)

// hoistFlags moves the flags of a subcommand in front of its positional
// arguments. cli stops parsing flags at the first positional argument, so
// "crud Note --out ." would otherwise leave --out unparsed.
func hoistFlags(args []string, commands []*cli.Command) []string {
	if len(args) < 3 {
		return args
	}

	command := findCommand(args[1], commands)
	if command == nil {
		return args
	}

	var flags, positional []string

	rest := args[2:]

	for i := 0; i < len(rest); i++ {
		token := rest[i]

		if token == "--" {
			positional = append(positional, rest[i+1:]...)

			break
		}

		if !strings.HasPrefix(token, "-") || token == "-" {
			positional = append(positional, token)

			continue
		}

		flags = append(flags, token)

		name := strings.TrimLeft(token, "-")
		if strings.Contains(name, "=") {
			continue
		}

		if takesValue(command, name) && i+1 < len(rest) {
			i++
			flags = append(flags, rest[i])
		}
	}

	hoisted := make([]string, 0, len(args))
	hoisted = append(hoisted, args[:2]...)
	hoisted = append(hoisted, flags...)

	return append(hoisted, positional...)
}

func findCommand(name string, commands []*cli.Command) *cli.Command {
	for _, command := range commands {
		if command.Name == name || slices.Contains(command.Aliases, name) {
			return command
		}
	}

	return nil
}

func takesValue(command *cli.Command, name string) bool {
	for _, flag := range command.Flags {
		if !slices.Contains(flag.Names(), name) {
			continue
		}

		_, isBool := flag.(*cli.BoolFlag)

		return !isBool
	}

	return false
}

// expectArgs rejects invocations carrying more positional arguments than the
// command uses.
func expectArgs(count int) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.Args().Len() > count {
			return fmt.Errorf("%w: %q (usage: %s [options] %s)", errUnexpectedArgument, c.Args().Get(count), c.Command.Name, c.Command.ArgsUsage)
		}

		return nil
	}
}
