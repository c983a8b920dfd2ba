package logic

import "errors"

var (
	// ErrInvalidUser 请求中的用户信息不合法（缺少ID、经验值为负等）
	ErrInvalidUser = errors.New("invalid user")
	// ErrUserNotFound 数据源中没有该用户
	ErrUserNotFound = errors.New("user not found")
)
