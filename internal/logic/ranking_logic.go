package logic

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"fitrank/internal/model"
	"fitrank/internal/types"
)

// RankingLogic 计算用户的全服排名和段位内排名
// 不持有状态，可并发调用
type RankingLogic struct {
	Roster model.RosterFetcher
}

func NewRankingLogic(roster model.RosterFetcher) *RankingLogic {
	return &RankingLogic{Roster: roster}
}

// ComputeRanks 拉取一次名单，计算目标用户的排名
// 名单拉取失败时返回错误；用户不在名单中时排名为 0，不视为错误
func (l *RankingLogic) ComputeRanks(ctx context.Context, target types.UserRecord) (types.RankResult, error) {
	roster, err := l.Roster.FetchAllUsersDescendingByXP(ctx)
	if err != nil {
		return types.RankResult{}, fmt.Errorf("compute ranks for %s: %w", target.ID, err)
	}
	result := RankWithin(roster, target)
	if !result.Ranked() {
		logx.WithContext(ctx).Infof("user %s not found in roster of %d users", target.ID, len(roster))
	}
	return result, nil
}

// ComputeRanksByID 只知道用户ID时使用，用户信息取自同一份名单
func (l *RankingLogic) ComputeRanksByID(ctx context.Context, userID string) (types.RankResult, error) {
	roster, err := l.Roster.FetchAllUsersDescendingByXP(ctx)
	if err != nil {
		return types.RankResult{}, fmt.Errorf("compute ranks for %s: %w", userID, err)
	}
	target := types.UserRecord{ID: userID}
	for _, user := range roster {
		if user.ID == userID {
			target = user
			break
		}
	}
	return RankWithin(roster, target), nil
}

// RankWithin 在给定名单（已按经验值降序）中计算排名
// 段位内排名使用名单中每个用户自己的经验值、称号和等级判断段位
func RankWithin(roster []types.UserRecord, target types.UserRecord) types.RankResult {
	tier := model.ClassifyUser(target).Key
	result := types.RankResult{
		UserID: target.ID,
		Tier:   tier,
	}

	tierPos := 0
	for i, user := range roster {
		sameTier := model.ClassifyUser(user).Key == tier
		if sameTier {
			tierPos++
		}
		if user.ID != target.ID {
			continue
		}
		result.GlobalRank = i + 1
		if sameTier {
			result.TierRank = tierPos
		}
		break
	}
	return result
}
