package model

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitrank/internal/types"
)

func TestFetchError(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := fmt.Errorf("wrapped: %w", newFetchError(sourceFirestore, cause))

	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, cause))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, sourceFirestore, fe.Source)
	assert.Contains(t, err.Error(), "deadline exceeded")

	assert.False(t, errors.Is(cause, ErrFetch))
}

func TestRosterFetcherFunc(t *testing.T) {
	want := []types.UserRecord{{ID: "a", XP: 10}}
	var f RosterFetcher = RosterFetcherFunc(func(context.Context) ([]types.UserRecord, error) {
		return want, nil
	})
	got, err := f.FetchAllUsersDescendingByXP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
