package cli

import (
	"fmt"
	"sync"

	"golang.org/x/xerrors"

	"cdr.dev/slog/v3"
	"github.com/coder/lazymut/guard"
	"github.com/coder/serpent"
)

func (r *RootCmd) concurrent() *serpent.Command {
	var workers int64
	cmd := &serpent.Command{
		Use:   "concurrent",
		Short: "Share one value between goroutines behind a lock",
		Handler: func(inv *serpent.Invocation) error {
			ctx := inv.Context()
			logger := r.logger(inv)
			if workers < 1 {
				return xerrors.Errorf("--workers must be at least 1, got %d", workers)
			}

			runs := 0
			locked := guard.New(func() int64 {
				runs++
				return 0
			})

			var wg sync.WaitGroup
			for i := int64(0); i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					locked.Do(func(v *int64) {
						*v++
					})
				}()
			}
			wg.Wait()

			total := guard.Modify(locked, func(v *int64) int64 { return *v })
			_, _ = fmt.Fprintf(inv.Stdout, "workers: %d\n", workers)
			_, _ = fmt.Fprintf(inv.Stdout, "initializer runs: %d\n", runs)
			_, _ = fmt.Fprintf(inv.Stdout, "total: %d\n", total)
			logger.Debug(ctx, "concurrent done", slog.F("workers", workers), slog.F("total", total))
			return nil
		},
	}
	cmd.Options = serpent.OptionSet{
		{
			Flag:        "workers",
			Env:         "LAZYMUT_WORKERS",
			Default:     "16",
			Description: "Number of goroutines sharing the value.",
			Value:       serpent.Int64Of(&workers),
		},
	}
	return cmd
}
