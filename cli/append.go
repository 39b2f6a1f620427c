package cli

import (
	"fmt"
	"strconv"

	"golang.org/x/xerrors"

	"cdr.dev/slog/v3"
	"github.com/coder/lazymut"
	"github.com/coder/serpent"
)

func (r *RootCmd) appendValues() *serpent.Command {
	var seed int64
	cmd := &serpent.Command{
		Use:   "append <values...>",
		Short: "Append values to a lazily created slice, one Get per value",
		Handler: func(inv *serpent.Invocation) error {
			ctx := inv.Context()
			logger := r.logger(inv)

			values := make([]int64, 0, len(inv.Args))
			for _, arg := range inv.Args {
				v, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return xerrors.Errorf("parse value %q: %w", arg, err)
				}
				values = append(values, v)
			}

			cell := lazymut.New(func() []int64 {
				logger.Debug(ctx, "seeding slice", slog.F("seed", seed))
				return []int64{seed}
			})
			for _, v := range values {
				s := cell.Get()
				*s = append(*s, v)
			}

			_, _ = fmt.Fprintln(inv.Stdout, *cell.Get())
			return nil
		},
	}
	cmd.Options = serpent.OptionSet{
		{
			Flag:        "seed",
			Env:         "LAZYMUT_SEED",
			Default:     "1",
			Description: "First element produced by the initializer.",
			Value:       serpent.Int64Of(&seed),
		},
	}
	return cmd
}
