package logic

import (
	"context"
	"fmt"

	"fitrank/internal/model"
	"fitrank/internal/types"
)

// TierLogic 对数据源中已存储的用户计算段位
type TierLogic struct {
	Users model.UserLookup
}

func NewTierLogic(users model.UserLookup) *TierLogic {
	return &TierLogic{Users: users}
}

// ClassifyStoredUser 查询用户并计算段位和段位进度
func (l *TierLogic) ClassifyStoredUser(ctx context.Context, userID string) (types.TierDescriptor, float64, error) {
	if userID == "" {
		return types.TierDescriptor{}, 0, fmt.Errorf("%w: user id is required", ErrInvalidUser)
	}
	user, err := l.Users.GetUser(ctx, userID)
	if err != nil {
		return types.TierDescriptor{}, 0, fmt.Errorf("classify user %s: %w", userID, err)
	}
	if user == nil {
		return types.TierDescriptor{}, 0, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	desc := model.ClassifyUser(*user)
	return desc, model.Progress(desc, user.XP), nil
}
