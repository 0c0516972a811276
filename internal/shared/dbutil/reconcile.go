package dbutil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrReconcileExhausted is returned when a conflicting row never became visible.
var ErrReconcileExhausted = errors.New("conflicting row not found after retries")

type Backoff struct {
	Initial     time.Duration
	Multiplier  float64
	MaxAttempts int
	// Sleep is swapped in tests; nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultBackoff() Backoff {
	return Backoff{
		Initial:     100 * time.Millisecond,
		Multiplier:  2,
		MaxAttempts: 5,
	}
}

func (b Backoff) sleep(ctx context.Context, d time.Duration) error {
	if b.Sleep != nil {
		return b.Sleep(ctx, d)
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// InsertOrReconcile runs insert and, on a unique violation, re-runs lookup with
// growing delays until the row inserted by the concurrent writer shows up.
// lookup returns found=false while the row is still invisible.
func InsertOrReconcile[T any](
	ctx context.Context,
	b Backoff,
	insert func(ctx context.Context) (T, error),
	lookup func(ctx context.Context) (T, bool, error),
) (T, bool, error) {
	var zero T

	created, err := insert(ctx)
	if err == nil {
		return created, true, nil
	}
	if !IsUniqueViolation(err) {
		return zero, false, err
	}

	attempts := b.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 1
	}

	delay := b.Initial
	for i := 0; i < attempts; i++ {
		if err := b.sleep(ctx, delay); err != nil {
			return zero, false, err
		}

		existing, found, lerr := lookup(ctx)
		if lerr != nil {
			return zero, false, lerr
		}
		if found {
			return existing, false, nil
		}

		delay = time.Duration(float64(delay) * mult)
	}

	return zero, false, fmt.Errorf("%w: %d attempts", ErrReconcileExhausted, attempts)
}
