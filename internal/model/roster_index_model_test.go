package model

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitrank/internal/types"
)

func newTestIndex(t *testing.T) (*RosterIndexModel, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRosterIndexModel(client, "test"), mr
}

func TestNewRosterIndexModel_Keys(t *testing.T) {
	m := NewRosterIndexModel(nil, "")
	assert.Equal(t, defaultRosterKey, m.RosterKey)
	assert.Equal(t, defaultUsersKey, m.UsersKey)

	m = NewRosterIndexModel(nil, "gym")
	assert.Equal(t, "gym:roster", m.RosterKey)
	assert.Equal(t, "gym:users", m.UsersKey)
}

func TestRosterIndexModel_RebuildAndFetch(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestIndex(t)

	require.NoError(t, m.Rebuild(ctx, []types.UserRecord{
		{ID: "b", XP: 100, Level: 3},
		{ID: "a", XP: 500, Level: 100, HasSpecialTitle: true},
		{ID: "c", XP: 50},
	}))

	users, err := m.FetchAllUsersDescendingByXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.UserRecord{
		{ID: "a", XP: 500, Level: 100, HasSpecialTitle: true},
		{ID: "b", XP: 100, Level: 3},
		{ID: "c", XP: 50},
	}, users)

	rank, err := m.Rank(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = m.Rank(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, rank)

	n, err := m.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRosterIndexModel_RebuildReplacesOldEntries(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestIndex(t)

	require.NoError(t, m.Rebuild(ctx, []types.UserRecord{{ID: "old", XP: 1}}))
	require.NoError(t, m.Rebuild(ctx, []types.UserRecord{{ID: "new", XP: 2}}))

	users, err := m.FetchAllUsersDescendingByXP(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "new", users[0].ID)

	require.NoError(t, m.Rebuild(ctx, nil))
	users, err = m.FetchAllUsersDescendingByXP(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestRosterIndexModel_UpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestIndex(t)

	require.NoError(t, m.Upsert(ctx, types.UserRecord{ID: "a", XP: 10}))
	require.NoError(t, m.Upsert(ctx, types.UserRecord{ID: "b", XP: 20}))
	require.NoError(t, m.Upsert(ctx, types.UserRecord{ID: "a", XP: 30, Level: 4}))

	users, err := m.FetchAllUsersDescendingByXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.UserRecord{
		{ID: "a", XP: 30, Level: 4},
		{ID: "b", XP: 20},
	}, users)

	require.NoError(t, m.Remove(ctx, "a"))
	users, err = m.FetchAllUsersDescendingByXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.UserRecord{{ID: "b", XP: 20}}, users)
}

func TestRosterIndexModel_MissingDetailsUseScore(t *testing.T) {
	ctx := context.Background()
	m, mr := newTestIndex(t)

	_, err := mr.ZAdd(m.RosterKey, 42, "ghost")
	require.NoError(t, err)

	users, err := m.FetchAllUsersDescendingByXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.UserRecord{{ID: "ghost", XP: 42}}, users)
}

func TestRosterIndexModel_FetchFailure(t *testing.T) {
	ctx := context.Background()
	m, mr := newTestIndex(t)
	mr.Close()

	_, err := m.FetchAllUsersDescendingByXP(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))

	_, err = m.Rank(ctx, "a")
	assert.True(t, errors.Is(err, ErrFetch))
}
