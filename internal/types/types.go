package types

import (
	"fmt"
	"strings"
)

// UserRecord 表示参与排名的用户（仅包含排名相关字段）
// Level 为 0 表示等级未知
type UserRecord struct {
	ID              string `json:"id" bson:"_id" firestore:"-"`
	XP              int64  `json:"xp" bson:"xp" firestore:"xp"`
	Level           int    `json:"level" bson:"level" firestore:"level"`
	HasSpecialTitle bool   `json:"hasSpecialTitle" bson:"hasSpecialTitle" firestore:"hasSpecialTitle"`
}

// TierKey 段位枚举，数值越大段位越高
type TierKey int

const (
	TierE TierKey = iota
	TierD
	TierC
	TierB
	TierA
	TierS
	// TierApex 顶级段位，只由等级和专属称号决定
	TierApex
)

var tierNames = [...]string{"E", "D", "C", "B", "A", "S", "APEX"}

func (k TierKey) String() string {
	if k >= 0 && int(k) < len(tierNames) {
		return tierNames[k]
	}
	return "UNKNOWN"
}

// Less 段位比较：k 低于 other 时返回 true
func (k TierKey) Less(other TierKey) bool {
	return k < other
}

// Compare 返回 -1、0、1
func (k TierKey) Compare(other TierKey) int {
	switch {
	case k < other:
		return -1
	case k > other:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TierKey) MarshalText() ([]byte, error) {
	if k < TierE || k > TierApex {
		return nil, fmt.Errorf("invalid tier key %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TierKey) UnmarshalText(data []byte) error {
	parsed, err := ParseTierKey(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseTierKey 按名称解析段位，大小写不敏感
func ParseTierKey(s string) (TierKey, error) {
	for i, name := range tierNames {
		if strings.EqualFold(s, name) {
			return TierKey(i), nil
		}
	}
	return TierE, fmt.Errorf("unknown tier %q", s)
}

// TierDescriptor 段位描述，按需计算，不落库
// NextThresholdMin 为 nil 表示已是最高段位或没有更高段位
type TierDescriptor struct {
	Key              TierKey `json:"key"`
	MinThreshold     int64   `json:"minThreshold"`
	NextThresholdMin *int64  `json:"nextThresholdMin,omitempty"`
	RequiresTitle    bool    `json:"requiresTitle,omitempty"`
	RequiresLevel    int     `json:"requiresLevel,omitempty"`
	MaxUsers         int     `json:"maxUsers,omitempty"`
}

// RankResult 用户的全服排名与段位内排名，0 表示未上榜
type RankResult struct {
	UserID     string  `json:"userId"`
	Tier       TierKey `json:"tier"`
	GlobalRank int     `json:"globalRank"`
	TierRank   int     `json:"tierRank"`
}

// Ranked 用户是否出现在排行榜中
func (r RankResult) Ranked() bool {
	return r.GlobalRank > 0
}
