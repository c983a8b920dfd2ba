package model

import (
	"fitrank/internal/types"
)

const (
	// ApexRequiredLevel 顶级段位要求的等级
	ApexRequiredLevel = 100
	// ApexMaxUsers 顶级段位的名额
	ApexMaxUsers = 1
)

// tierRule 段位规则，qualifies 决定用户是否进入该段位
type tierRule struct {
	key          types.TierKey
	minThreshold int64
	qualifies    func(xp int64, hasSpecialTitle bool, level int) bool
}

func xpAtLeast(min int64) func(int64, bool, int) bool {
	return func(xp int64, _ bool, _ int) bool {
		return xp >= min
	}
}

// tierRules 按段位从高到低排列，顶级段位在最前面按专属规则判断
// 顶级段位的 minThreshold 只作展示用，不参与判断
var tierRules = []tierRule{
	{
		key:          types.TierApex,
		minThreshold: 100000,
		qualifies: func(_ int64, hasSpecialTitle bool, level int) bool {
			return level == ApexRequiredLevel && hasSpecialTitle
		},
	},
	{key: types.TierS, minThreshold: 30000, qualifies: xpAtLeast(30000)},
	{key: types.TierA, minThreshold: 15000, qualifies: xpAtLeast(15000)},
	{key: types.TierB, minThreshold: 7000, qualifies: xpAtLeast(7000)},
	{key: types.TierC, minThreshold: 3000, qualifies: xpAtLeast(3000)},
	{key: types.TierD, minThreshold: 1000, qualifies: xpAtLeast(1000)},
	{key: types.TierE, minThreshold: 0, qualifies: xpAtLeast(0)},
}

// ClassifyTier 根据经验值、专属称号、等级计算段位
// 不满足顶级段位条件时跳过顶级段位，继续按经验值匹配普通段位
func ClassifyTier(xp int64, hasSpecialTitle bool, level int) types.TierDescriptor {
	for i, rule := range tierRules {
		if !rule.qualifies(xp, hasSpecialTitle, level) {
			continue
		}
		desc := describe(rule)
		if i > 0 {
			next := tierRules[i-1].minThreshold
			desc.NextThresholdMin = &next
		}
		return desc
	}
	// 只有经验值为负（非法输入）才会走到这里
	return describe(tierRules[len(tierRules)-1])
}

// ClassifyUser 对一条用户记录计算段位
func ClassifyUser(user types.UserRecord) types.TierDescriptor {
	return ClassifyTier(user.XP, user.HasSpecialTitle, user.Level)
}

func describe(rule tierRule) types.TierDescriptor {
	desc := types.TierDescriptor{
		Key:          rule.key,
		MinThreshold: rule.minThreshold,
	}
	if rule.key == types.TierApex {
		desc.RequiresTitle = true
		desc.RequiresLevel = ApexRequiredLevel
		desc.MaxUsers = ApexMaxUsers
	}
	return desc
}

// TierProgress 当前段位到下一段位的进度，取值 [0,1]
// 不知道等级时使用，因此不会判定为顶级段位
func TierProgress(xp int64, hasSpecialTitle bool) float64 {
	return Progress(ClassifyTier(xp, hasSpecialTitle, 0), xp)
}

// Progress 在段位阈值和下一段位阈值之间线性插值
func Progress(desc types.TierDescriptor, xp int64) float64 {
	if desc.Key == types.TierApex || desc.NextThresholdMin == nil {
		return 1
	}
	span := *desc.NextThresholdMin - desc.MinThreshold
	if span <= 0 {
		return 1
	}
	p := float64(xp-desc.MinThreshold) / float64(span)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Tiers 返回段位表（从低到高）
func Tiers() []types.TierDescriptor {
	out := make([]types.TierDescriptor, 0, len(tierRules))
	for i := len(tierRules) - 1; i >= 0; i-- {
		desc := describe(tierRules[i])
		if i > 0 {
			next := tierRules[i-1].minThreshold
			desc.NextThresholdMin = &next
		}
		out = append(out, desc)
	}
	return out
}
