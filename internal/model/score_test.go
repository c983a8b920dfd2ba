package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcRosterScore(t *testing.T) {
	assert.Equal(t, 0.0, CalcRosterScore(-1))
	assert.Equal(t, 5000.0, CalcRosterScore(5000))
	assert.Equal(t, float64(maxExactScore), CalcRosterScore(1<<62))
}

func TestScoreToXP(t *testing.T) {
	assert.Equal(t, int64(5000), ScoreToXP(CalcRosterScore(5000)))
	assert.Equal(t, int64(0), ScoreToXP(-3))
}
