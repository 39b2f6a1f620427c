package cli

import (
	"fmt"

	"golang.org/x/xerrors"

	"cdr.dev/slog/v3"
	"github.com/coder/lazymut"
	"github.com/coder/serpent"
)

func (r *RootCmd) counter() *serpent.Command {
	var calls int64
	cmd := &serpent.Command{
		Use:   "counter",
		Short: "Call Get repeatedly on a value whose initializer counts its runs",
		Handler: func(inv *serpent.Invocation) error {
			ctx := inv.Context()
			logger := r.logger(inv)
			if calls < 1 {
				return xerrors.Errorf("--calls must be at least 1, got %d", calls)
			}

			runs := 0
			cell := lazymut.New(func() int {
				runs++
				logger.Debug(ctx, "initializer running", slog.F("run", runs))
				return runs
			})

			for i := int64(1); i <= calls; i++ {
				v := cell.Get()
				_, _ = fmt.Fprintf(inv.Stdout, "get %d: %d\n", i, *v)
			}
			_, _ = fmt.Fprintf(inv.Stdout, "initializer runs: %d\n", runs)
			logger.Info(ctx, "counter done", slog.F("calls", calls), slog.F("runs", runs))
			return nil
		},
	}
	cmd.Options = serpent.OptionSet{
		{
			Flag:          "calls",
			FlagShorthand: "n",
			Env:           "LAZYMUT_CALLS",
			Default:       "3",
			Description:   "Number of times to call Get.",
			Value:         serpent.Int64Of(&calls),
		},
	}
	return cmd
}
