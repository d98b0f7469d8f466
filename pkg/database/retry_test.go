package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"locked", errors.New("database is locked"), true},
		{"table locked", errors.New("database table is locked"), true},
		{"sqlite busy", errors.New("SQLITE_BUSY: cannot start a transaction"), true},
		{"busy code", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"unrelated", errors.New("no such table: books"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isBusyError(tt.err))
		})
	}
}

func TestRetryWithBackoffStopsOnNonBusyError(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retryWithBackoff(context.Background(), 5, func() error {
		calls++
		return errors.New("no such table: books")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoffRetriesBusyErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retryWithBackoff(context.Background(), 5, func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffExhaustsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		calls++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
