package cache

import (
	"context"
	"errors"
	"log/slog"

	"credito/pkg/platform/circuit"
	"credito/pkg/platform/sentinel"
)

// Fallback reads and writes through a primary cache and keeps a secondary
// in sync. After repeated primary failures the breaker opens and reads are
// served from the secondary until the primary recovers.
type Fallback struct {
	primary   Cache
	secondary Cache
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

// NewFallback wires primary (usually Redis) in front of secondary (usually Memory).
func NewFallback(primary, secondary Cache, breaker *circuit.Breaker, logger *slog.Logger) *Fallback {
	if breaker == nil {
		breaker = circuit.New("cpf-cache")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fallback{primary: primary, secondary: secondary, breaker: breaker, logger: logger}
}

// Degraded reports whether reads are currently served by the secondary.
func (f *Fallback) Degraded() bool {
	return f.breaker.IsOpen()
}

func (f *Fallback) Get(ctx context.Context, digits string) (bool, error) {
	valid, err := f.primary.Get(ctx, digits)
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if usePrimary := f.recordSuccess(ctx); usePrimary {
			return valid, err
		}
		return f.secondary.Get(ctx, digits)
	}
	f.recordFailure(ctx, err)
	return f.secondary.Get(ctx, digits)
}

func (f *Fallback) Set(ctx context.Context, digits string, valid bool) error {
	_ = f.secondary.Set(ctx, digits, valid)
	if err := f.primary.Set(ctx, digits, valid); err != nil {
		f.recordFailure(ctx, err)
		return nil
	}
	f.recordSuccess(ctx)
	return nil
}

func (f *Fallback) Clear(ctx context.Context) error {
	if err := f.secondary.Clear(ctx); err != nil {
		return err
	}
	return f.primary.Clear(ctx)
}

func (f *Fallback) recordSuccess(ctx context.Context) bool {
	usePrimary, change := f.breaker.RecordSuccess()
	if change.Closed {
		f.logger.InfoContext(ctx, "cpf cache primary recovered", "breaker", f.breaker.Name())
	}
	return usePrimary
}

func (f *Fallback) recordFailure(ctx context.Context, err error) {
	_, change := f.breaker.RecordFailure()
	if change.Opened {
		f.logger.WarnContext(ctx, "cpf cache primary degraded, serving from memory",
			"breaker", f.breaker.Name(),
			"error", err,
		)
	}
}
