package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressionInitial(t *testing.T) {
	p := NewProgression(DefaultRules())

	assert.Equal(t, 0, p.Score())
	assert.Equal(t, 1, p.Level())
	assert.Equal(t, 0, p.Lines())
	assert.Equal(t, time.Second, p.FallInterval())
}

func TestProgressionScoring(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
	}

	for _, tc := range tests {
		p := NewProgression(DefaultRules())
		assert.Equal(t, tc.want, p.ApplyClearedRows(tc.rows), "%d rows", tc.rows)
		assert.Equal(t, tc.want, p.Score())
		assert.Equal(t, tc.rows, p.Lines())
	}
}

func TestProgressionScoreScalesWithLevel(t *testing.T) {
	p := NewProgression(DefaultRules())
	for range 5 {
		p.ApplyClearedRows(4)
	}
	assert.Equal(t, 3, p.Level())

	before := p.Score()
	assert.Equal(t, 300, p.ApplyClearedRows(2))
	assert.Equal(t, before+300, p.Score())
}

func TestProgressionZeroRowsIsNoop(t *testing.T) {
	p := NewProgression(DefaultRules())
	p.ApplyClearedRows(1)
	before := *p

	assert.Equal(t, 0, p.ApplyClearedRows(0))
	assert.Equal(t, 0, p.ApplyClearedRows(5))
	assert.Equal(t, before, *p)
}

func TestProgressionLevelsAndSpeed(t *testing.T) {
	p := NewProgression(DefaultRules())

	for range 9 {
		p.ApplyClearedRows(1)
	}
	assert.Equal(t, 1, p.Level())

	p.ApplyClearedRows(1)
	assert.Equal(t, 10, p.Lines())
	assert.Equal(t, 2, p.Level())
	assert.Equal(t, 900*time.Millisecond, p.FallInterval())

	for range 10 {
		p.ApplyClearedRows(1)
	}
	assert.Equal(t, 3, p.Level())
	assert.Equal(t, 800*time.Millisecond, p.FallInterval())

	for range 40 {
		p.ApplyClearedRows(4)
	}
	assert.Equal(t, 180, p.Lines())
	assert.Equal(t, 19, p.Level())
	assert.Equal(t, 100*time.Millisecond, p.FallInterval(), "interval floors at 100ms")
}

func TestProgressionMonotonic(t *testing.T) {
	p := NewProgression(DefaultRules())
	prevScore, prevLevel, prevLines := 0, 1, 0
	prevInterval := p.FallInterval()

	for i := range 100 {
		p.ApplyClearedRows(i % 5)
		assert.GreaterOrEqual(t, p.Score(), prevScore)
		assert.GreaterOrEqual(t, p.Level(), prevLevel)
		assert.GreaterOrEqual(t, p.Lines(), prevLines)
		assert.LessOrEqual(t, p.FallInterval(), prevInterval)
		prevScore, prevLevel, prevLines = p.Score(), p.Level(), p.Lines()
		prevInterval = p.FallInterval()
	}
}

func TestProgressionReset(t *testing.T) {
	p := NewProgression(DefaultRules())
	for range 6 {
		p.ApplyClearedRows(4)
	}
	p.Reset()

	assert.Equal(t, 0, p.Score())
	assert.Equal(t, 1, p.Level())
	assert.Equal(t, 0, p.Lines())
	assert.Equal(t, time.Second, p.FallInterval())
}

func TestProgressionCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.LinesPerLevel = 2
	rules.BaseInterval = 500 * time.Millisecond
	rules.IntervalStep = 200 * time.Millisecond
	rules.MinInterval = 150 * time.Millisecond
	p := NewProgression(rules)

	p.ApplyClearedRows(2)
	assert.Equal(t, 2, p.Level())
	assert.Equal(t, 300*time.Millisecond, p.FallInterval())

	p.ApplyClearedRows(2)
	assert.Equal(t, 150*time.Millisecond, p.FallInterval())
}
