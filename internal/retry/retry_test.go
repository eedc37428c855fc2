package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	r := NewRetryer(3, time.Millisecond, 10*time.Millisecond)

	attempts := 0
	err := r.Do(context.Background(), func() (bool, error) {
		attempts++
		if attempts < 3 {
			return true, errors.New("transient")
		}
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestDo_StopsOnDefinitiveError(t *testing.T) {
	r := NewRetryer(5, time.Millisecond, 10*time.Millisecond)
	definitive := errors.New("not found")

	attempts := 0
	err := r.Do(context.Background(), func() (bool, error) {
		attempts++
		return false, definitive
	})
	require.ErrorIs(t, err, definitive)
	require.Equal(t, 1, attempts)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	r := NewRetryer(2, time.Millisecond, 10*time.Millisecond)
	transient := errors.New("unavailable")

	attempts := 0
	err := r.Do(context.Background(), func() (bool, error) {
		attempts++
		return true, transient
	})
	require.ErrorIs(t, err, transient)
	require.Equal(t, 3, attempts) // initial attempt + 2 retries
}

func TestDo_ContextCancelled(t *testing.T) {
	r := NewRetryer(10, 50*time.Millisecond, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := r.Do(ctx, func() (bool, error) {
		attempts++
		return true, errors.New("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, attempts)
}

func TestBackoff_Capped(t *testing.T) {
	r := NewRetryer(10, 100*time.Millisecond, 300*time.Millisecond)
	require.Equal(t, 100*time.Millisecond, r.backoff(0))
	require.Equal(t, 200*time.Millisecond, r.backoff(1))
	require.Equal(t, 300*time.Millisecond, r.backoff(2))
	require.Equal(t, 300*time.Millisecond, r.backoff(5))
}
