package cli

import (
	"fmt"

	"golang.org/x/xerrors"

	"cdr.dev/slog/v3"
	"github.com/coder/lazymut"
	"github.com/coder/serpent"
)

var errInitFailed = xerrors.New("initializer failed")

func (r *RootCmd) poison() *serpent.Command {
	return &serpent.Command{
		Use:   "poison",
		Short: "Show what happens to a value whose initializer panics",
		Handler: func(inv *serpent.Invocation) error {
			ctx := inv.Context()
			logger := r.logger(inv)

			cell := lazymut.New(func() int {
				panic(errInitFailed)
			})

			_, err := recoverGet(cell)
			if !xerrors.Is(err, errInitFailed) {
				return xerrors.Errorf("expected initializer failure, got %v", err)
			}
			_, _ = fmt.Fprintf(inv.Stdout, "first get: %v\n", err)

			_, err = recoverGet(cell)
			if !xerrors.Is(err, lazymut.ErrPoisoned) {
				return xerrors.Errorf("expected poisoned cell, got %v", err)
			}
			_, _ = fmt.Fprintf(inv.Stdout, "second get: %v\n", err)
			_, _ = fmt.Fprintf(inv.Stdout, "state: %s\n", cell)
			logger.Info(ctx, "cell poisoned", slog.Error(err))
			return nil
		},
	}
}

// recoverGet converts a panic raised by Get into an error.
func recoverGet[T any](cell *lazymut.LazyMut[T]) (v *T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rerr, ok := r.(error); ok {
			err = xerrors.Errorf("panic: %w", rerr)
			return
		}
		err = xerrors.Errorf("panic: %v", r)
	}()
	return cell.Get(), nil
}
