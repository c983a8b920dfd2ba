package logic

import (
	"context"
	"fmt"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"

	"fitrank/internal/model"
	"fitrank/internal/types"
)

// RosterIndex 可维护的排行榜索引
type RosterIndex interface {
	model.RosterFetcher
	Rebuild(ctx context.Context, users []types.UserRecord) error
	Upsert(ctx context.Context, user types.UserRecord) error
	Remove(ctx context.Context, userID string) error
	Size(ctx context.Context) (int64, error)
}

// IndexLogic 负责把数据源中的用户同步到 Redis 排行榜索引
type IndexLogic struct {
	Source model.RosterFetcher
	Index  RosterIndex
	mu     sync.Mutex // 重建与单用户更新互斥
}

func NewIndexLogic(source model.RosterFetcher, index RosterIndex) *IndexLogic {
	return &IndexLogic{Source: source, Index: index}
}

// RebuildIndex 从数据源拉取全部用户并重建索引，返回写入的用户数
func (l *IndexLogic) RebuildIndex(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users, err := l.Source.FetchAllUsersDescendingByXP(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild roster index: %w", err)
	}
	if err := l.Index.Rebuild(ctx, users); err != nil {
		return 0, err
	}
	logx.WithContext(ctx).Infof("roster index rebuilt with %d users", len(users))
	return len(users), nil
}

// OnUserXPChanged 用户经验值、等级或称号变化时触发，更新索引中的该用户
func (l *IndexLogic) OnUserXPChanged(ctx context.Context, user types.UserRecord) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidUser)
	}
	if user.XP < 0 {
		return fmt.Errorf("%w: user %s has negative xp %d", ErrInvalidUser, user.ID, user.XP)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.Index.Upsert(ctx, user); err != nil {
		return err
	}
	logx.WithContext(ctx).Infof("roster index updated user %s xp=%d level=%d", user.ID, user.XP, user.Level)
	return nil
}

// OnUserRemoved 用户注销或被移出排行榜时触发
func (l *IndexLogic) OnUserRemoved(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidUser)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.Index.Remove(ctx, userID); err != nil {
		return err
	}
	logx.WithContext(ctx).Infof("roster index removed user %s", userID)
	return nil
}

// IndexSize 索引中的用户数
func (l *IndexLogic) IndexSize(ctx context.Context) (int64, error) {
	return l.Index.Size(ctx)
}
