package dbutil

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg code", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped pg code", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"other pg code", &pgconn.PgError{Code: "23503"}, false},
		{"message fallback", errors.New(`ERROR: duplicate key value violates unique constraint "uq_customers_email"`), true},
		{"unrelated", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_customers_phone"})
	assert.Equal(t, "uq_customers_phone", ConstraintName(err))
	assert.Equal(t, "", ConstraintName(errors.New("x")))
}

func recordingBackoff(delays *[]time.Duration) Backoff {
	b := DefaultBackoff()
	b.Sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return b
}

func TestInsertOrReconcile_InsertSucceeds(t *testing.T) {
	var delays []time.Duration
	got, created, err := InsertOrReconcile(context.Background(), recordingBackoff(&delays),
		func(context.Context) (string, error) { return "new", nil },
		func(context.Context) (string, bool, error) { t.Fatal("lookup must not run"); return "", false, nil },
	)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "new", got)
	assert.Empty(t, delays)
}

func TestInsertOrReconcile_FindsConcurrentRow(t *testing.T) {
	var delays []time.Duration
	calls := 0
	got, created, err := InsertOrReconcile(context.Background(), recordingBackoff(&delays),
		func(context.Context) (string, error) { return "", &pgconn.PgError{Code: "23505"} },
		func(context.Context) (string, bool, error) {
			calls++
			if calls < 3 {
				return "", false, nil
			}
			return "existing", true, nil
		},
	)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "existing", got)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, delays)
}

func TestInsertOrReconcile_Exhausted(t *testing.T) {
	var delays []time.Duration
	_, _, err := InsertOrReconcile(context.Background(), recordingBackoff(&delays),
		func(context.Context) (int, error) { return 0, &pgconn.PgError{Code: "23505"} },
		func(context.Context) (int, bool, error) { return 0, false, nil },
	)

	assert.ErrorIs(t, err, ErrReconcileExhausted)
	assert.Len(t, delays, 5)
	assert.Equal(t, 1600*time.Millisecond, delays[4])
}

func TestInsertOrReconcile_OtherErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	var delays []time.Duration
	_, _, err := InsertOrReconcile(context.Background(), recordingBackoff(&delays),
		func(context.Context) (int, error) { return 0, boom },
		func(context.Context) (int, bool, error) { return 0, false, nil },
	)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, delays)
}

func TestInsertOrReconcile_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := DefaultBackoff()
	_, _, err := InsertOrReconcile(ctx, b,
		func(context.Context) (int, error) { return 0, &pgconn.PgError{Code: "23505"} },
		func(context.Context) (int, bool, error) { return 0, false, nil },
	)

	assert.ErrorIs(t, err, context.Canceled)
}
