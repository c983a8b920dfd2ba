package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/zeromicro/go-zero/core/jsonx"

	"fitrank/internal/types"
)

const (
	sourceRedis = "redis"

	defaultRosterKey = "fitrank:roster"
	defaultUsersKey  = "fitrank:users"
)

// RosterIndexModel 用 Redis zSet 维护按经验值排序的名单索引
// zSet 保存 用户ID -> 分数，hash 保存用户的等级、称号等信息
type RosterIndexModel struct {
	RedisClient *redis.Client
	RosterKey   string
	UsersKey    string
}

func NewRosterIndexModel(client *redis.Client, prefix string) *RosterIndexModel {
	m := &RosterIndexModel{
		RedisClient: client,
		RosterKey:   defaultRosterKey,
		UsersKey:    defaultUsersKey,
	}
	if prefix != "" {
		m.RosterKey = prefix + ":roster"
		m.UsersKey = prefix + ":users"
	}
	return m
}

// Rebuild 清空并重建索引
func (m *RosterIndexModel) Rebuild(ctx context.Context, users []types.UserRecord) error {
	zMembers := make([]*redis.Z, 0, len(users))
	fields := make(map[string]interface{}, len(users))
	for _, user := range users {
		data, err := jsonx.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user %s: %w", user.ID, err)
		}
		zMembers = append(zMembers, &redis.Z{
			Score:  CalcRosterScore(user.XP),
			Member: user.ID,
		})
		fields[user.ID] = data
	}

	pipe := m.RedisClient.TxPipeline()
	pipe.Del(ctx, m.RosterKey, m.UsersKey)
	if len(zMembers) > 0 {
		pipe.ZAdd(ctx, m.RosterKey, zMembers...)
		pipe.HSet(ctx, m.UsersKey, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild roster index failed: %w", err)
	}
	return nil
}

// Upsert 写入或更新单个用户
func (m *RosterIndexModel) Upsert(ctx context.Context, user types.UserRecord) error {
	data, err := jsonx.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}
	pipe := m.RedisClient.TxPipeline()
	pipe.ZAdd(ctx, m.RosterKey, &redis.Z{Score: CalcRosterScore(user.XP), Member: user.ID})
	pipe.HSet(ctx, m.UsersKey, user.ID, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert user %s failed: %w", user.ID, err)
	}
	return nil
}

// Remove 从索引中删除用户
func (m *RosterIndexModel) Remove(ctx context.Context, userID string) error {
	pipe := m.RedisClient.TxPipeline()
	pipe.ZRem(ctx, m.RosterKey, userID)
	pipe.HDel(ctx, m.UsersKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove user %s failed: %w", userID, err)
	}
	return nil
}

// FetchAllUsersDescendingByXP 在同一个事务里读取 zSet 和 hash，保证快照一致
func (m *RosterIndexModel) FetchAllUsersDescendingByXP(ctx context.Context) ([]types.UserRecord, error) {
	pipe := m.RedisClient.TxPipeline()
	rangeCmd := pipe.ZRevRangeWithScores(ctx, m.RosterKey, 0, -1)
	usersCmd := pipe.HGetAll(ctx, m.UsersKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, newFetchError(sourceRedis, err)
	}

	details := usersCmd.Val()
	entries := rangeCmd.Val()
	users := make([]types.UserRecord, 0, len(entries))
	for _, z := range entries {
		id, ok := z.Member.(string)
		if !ok {
			id = fmt.Sprint(z.Member)
		}
		var user types.UserRecord
		if raw, ok := details[id]; ok {
			if err := jsonx.UnmarshalFromString(raw, &user); err != nil {
				return nil, newFetchError(sourceRedis, fmt.Errorf("decode user %s: %w", id, err))
			}
		}
		// 排序以 zSet 为准
		user.ID = id
		user.XP = ScoreToXP(z.Score)
		users = append(users, user)
	}
	return users, nil
}

// Rank 用户在索引中的全服排名（从 1 开始），不在榜上返回 0
func (m *RosterIndexModel) Rank(ctx context.Context, userID string) (int, error) {
	rank, err := m.RedisClient.ZRevRank(ctx, m.RosterKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, newFetchError(sourceRedis, err)
	}
	return int(rank) + 1, nil
}

// Size 索引中的用户数
func (m *RosterIndexModel) Size(ctx context.Context) (int64, error) {
	n, err := m.RedisClient.ZCard(ctx, m.RosterKey).Result()
	if err != nil {
		return 0, newFetchError(sourceRedis, err)
	}
	return n, nil
}
