package model

import (
	"context"
	"errors"
	"fmt"

	"fitrank/internal/types"
)

// ErrFetch 拉取排行榜名单失败，可用 errors.Is 判断
var ErrFetch = errors.New("roster fetch failed")

// FetchError 名单数据源（Firestore、Mongo、Redis）访问失败
// 与"用户不在榜上"严格区分，后者不是错误
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch roster from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrFetch) 对所有 FetchError 成立
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func newFetchError(source string, err error) error {
	return &FetchError{Source: source, Err: err}
}

// RosterFetcher 返回按经验值降序排列的全部用户
type RosterFetcher interface {
	FetchAllUsersDescendingByXP(ctx context.Context) ([]types.UserRecord, error)
}

// RosterFetcherFunc 适配普通函数
type RosterFetcherFunc func(ctx context.Context) ([]types.UserRecord, error)

func (f RosterFetcherFunc) FetchAllUsersDescendingByXP(ctx context.Context) ([]types.UserRecord, error) {
	return f(ctx)
}

// UserLookup 按ID查询单个用户，不存在时返回 nil, nil
type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*types.UserRecord, error)
}
