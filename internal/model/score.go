package model

import "math"

// maxExactScore Redis zSet 的分数是 float64，超过 2^53 的经验值无法精确表示
const maxExactScore = 1 << 53

// CalcRosterScore 计算排行榜分数，分数越大排名越靠前
// 分数即经验值，同分时的先后顺序不做保证
func CalcRosterScore(xp int64) float64 {
	if xp < 0 {
		return 0
	}
	if xp > maxExactScore {
		return maxExactScore
	}
	return float64(xp)
}

// ScoreToXP 将 zSet 分数还原为经验值
func ScoreToXP(score float64) int64 {
	if score <= 0 || math.IsNaN(score) {
		return 0
	}
	return int64(math.Round(score))
}
