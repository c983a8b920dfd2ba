package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitrank/internal/model"
	"fitrank/internal/types"
)

func staticRoster(users ...types.UserRecord) model.RosterFetcher {
	return model.RosterFetcherFunc(func(context.Context) ([]types.UserRecord, error) {
		return users, nil
	})
}

func failingRoster(err error) model.RosterFetcher {
	return model.RosterFetcherFunc(func(context.Context) ([]types.UserRecord, error) {
		return nil, &model.FetchError{Source: "test", Err: err}
	})
}

func TestComputeRanks_GlobalRank(t *testing.T) {
	l := NewRankingLogic(staticRoster(
		types.UserRecord{ID: "A", XP: 500},
		types.UserRecord{ID: "B", XP: 100},
		types.UserRecord{ID: "C", XP: 50},
	))

	got, err := l.ComputeRanks(context.Background(), types.UserRecord{ID: "B", XP: 100})
	require.NoError(t, err)
	assert.Equal(t, 2, got.GlobalRank)
	assert.Equal(t, 2, got.TierRank)
	assert.Equal(t, types.TierE, got.Tier)
	assert.True(t, got.Ranked())
}

func TestComputeRanks_TierRank(t *testing.T) {
	roster := []types.UserRecord{
		{ID: "apex", XP: 40000, Level: 100, HasSpecialTitle: true},
		{ID: "s1", XP: 35000, Level: 99, HasSpecialTitle: true},
		{ID: "a1", XP: 20000},
		{ID: "c1", XP: 6000},
		{ID: "c2", XP: 5000},
		{ID: "e1", XP: 10},
	}
	l := NewRankingLogic(staticRoster(roster...))

	tests := []struct {
		target types.UserRecord
		want   types.RankResult
	}{
		{roster[0], types.RankResult{UserID: "apex", Tier: types.TierApex, GlobalRank: 1, TierRank: 1}},
		{roster[1], types.RankResult{UserID: "s1", Tier: types.TierS, GlobalRank: 2, TierRank: 1}},
		{roster[2], types.RankResult{UserID: "a1", Tier: types.TierA, GlobalRank: 3, TierRank: 1}},
		{roster[4], types.RankResult{UserID: "c2", Tier: types.TierC, GlobalRank: 5, TierRank: 2}},
		{roster[5], types.RankResult{UserID: "e1", Tier: types.TierE, GlobalRank: 6, TierRank: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.target.ID, func(t *testing.T) {
			got, err := l.ComputeRanks(context.Background(), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRanks_Absent(t *testing.T) {
	l := NewRankingLogic(staticRoster(types.UserRecord{ID: "A", XP: 500}))

	got, err := l.ComputeRanks(context.Background(), types.UserRecord{ID: "Z", XP: 500})
	require.NoError(t, err)
	assert.Zero(t, got.GlobalRank)
	assert.Zero(t, got.TierRank)
	assert.False(t, got.Ranked())
}

func TestComputeRanks_EmptyRoster(t *testing.T) {
	l := NewRankingLogic(staticRoster())

	got, err := l.ComputeRanks(context.Background(), types.UserRecord{ID: "A"})
	require.NoError(t, err)
	assert.Equal(t, types.RankResult{UserID: "A", Tier: types.TierE}, got)
}

func TestComputeRanks_TargetTierDiffersFromRosterEntry(t *testing.T) {
	// 调用方传入的经验值比名单中的新，目标段位按传入值计算
	l := NewRankingLogic(staticRoster(
		types.UserRecord{ID: "A", XP: 8000},
		types.UserRecord{ID: "B", XP: 2000},
	))

	got, err := l.ComputeRanks(context.Background(), types.UserRecord{ID: "B", XP: 3500})
	require.NoError(t, err)
	assert.Equal(t, types.TierC, got.Tier)
	assert.Equal(t, 2, got.GlobalRank)
	assert.Zero(t, got.TierRank)
}

func TestComputeRanks_FetchFailure(t *testing.T) {
	cause := errors.New("unavailable")
	l := NewRankingLogic(failingRoster(cause))

	got, err := l.ComputeRanks(context.Background(), types.UserRecord{ID: "A"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrFetch))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, types.RankResult{}, got)

	_, err = l.ComputeRanksByID(context.Background(), "A")
	assert.True(t, errors.Is(err, model.ErrFetch))
}

func TestComputeRanks_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewRankingLogic(model.RosterFetcherFunc(func(ctx context.Context) ([]types.UserRecord, error) {
		return nil, ctx.Err()
	}))
	_, err := l.ComputeRanks(ctx, types.UserRecord{ID: "A"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComputeRanksByID(t *testing.T) {
	l := NewRankingLogic(staticRoster(
		types.UserRecord{ID: "A", XP: 9000},
		types.UserRecord{ID: "B", XP: 8000},
		types.UserRecord{ID: "C", XP: 4000},
	))

	got, err := l.ComputeRanksByID(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, types.RankResult{UserID: "B", Tier: types.TierB, GlobalRank: 2, TierRank: 2}, got)

	got, err = l.ComputeRanksByID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, got.Ranked())
	assert.Zero(t, got.TierRank)
}
