// Package cli exposes LazyMut through a small command line tool.
package cli

import (
	"cdr.dev/slog/v3"
	"cdr.dev/slog/v3/sloggers/sloghuman"
	"github.com/coder/serpent"
)

type RootCmd struct {
	// Logger overrides the stderr logger when set.
	Logger *slog.Logger

	verbose bool
}

func (r *RootCmd) Command() *serpent.Command {
	cmd := &serpent.Command{
		Use:   "lazymut",
		Short: "Exercise a lazily initialized mutable value",
		Long:  "Runs small scenarios against a LazyMut and prints what the value and its initializer did.",
		Handler: func(inv *serpent.Invocation) error {
			return inv.Command.HelpHandler(inv)
		},
		Children: []*serpent.Command{
			r.counter(),
			r.appendValues(),
			r.poison(),
			r.concurrent(),
		},
	}
	cmd.Options = serpent.OptionSet{
		{
			Name:        "Verbose",
			Flag:        "verbose",
			Env:         "LAZYMUT_VERBOSE",
			Description: "Output debug-level logs.",
			Value:       serpent.BoolOf(&r.verbose),
		},
	}
	return cmd
}

func (r *RootCmd) logger(inv *serpent.Invocation) slog.Logger {
	logger := slog.Make(sloghuman.Sink(inv.Stderr))
	if r.Logger != nil {
		logger = *r.Logger
	}
	if r.verbose {
		logger = logger.Leveled(slog.LevelDebug)
	}
	return logger
}
