package tetris

import "time"

// Rules parameterizes scoring and speed. DefaultRules matches the classic table.
type Rules struct {
	LinePoints    [5]int        // Base points indexed by rows cleared in one settle
	LinesPerLevel int           // Cleared rows needed per level
	BaseInterval  time.Duration // Fall interval at level 1
	IntervalStep  time.Duration // Reduction per level
	MinInterval   time.Duration // Lower bound on the fall interval
}

// DefaultRules returns 40/100/300/1200 scoring, a level every 10 rows and a
// fall interval starting at 1s, 100ms faster per level, floored at 100ms.
func DefaultRules() Rules {
	return Rules{
		LinePoints:    [5]int{0, 40, 100, 300, 1200},
		LinesPerLevel: 10,
		BaseInterval:  1000 * time.Millisecond,
		IntervalStep:  100 * time.Millisecond,
		MinInterval:   100 * time.Millisecond,
	}
}

// Progression tracks score, level, cleared rows and the derived fall speed.
type Progression struct {
	rules        Rules
	score        int
	level        int
	lines        int
	fallInterval time.Duration
}

// NewProgression creates a tracker at level 1 with no score.
func NewProgression(rules Rules) *Progression {
	p := &Progression{rules: rules}
	p.Reset()
	return p
}

// Reset returns all counters to their initial values.
func (p *Progression) Reset() {
	p.score = 0
	p.level = 1
	p.lines = 0
	p.fallInterval = p.intervalFor(1)
}

// ApplyClearedRows credits n rows cleared by a single settle and returns the
// points awarded. n outside 1..4 awards nothing.
func (p *Progression) ApplyClearedRows(n int) int {
	if n <= 0 || n >= len(p.rules.LinePoints) {
		return 0
	}
	awarded := p.rules.LinePoints[n] * p.level
	p.score += awarded
	p.lines += n
	p.level = p.lines/p.rules.LinesPerLevel + 1
	p.fallInterval = p.intervalFor(p.level)
	return awarded
}

func (p *Progression) intervalFor(level int) time.Duration {
	interval := p.rules.BaseInterval - time.Duration(level-1)*p.rules.IntervalStep
	return max(p.rules.MinInterval, interval)
}

// Score returns the accumulated points.
func (p *Progression) Score() int { return p.score }

// Level returns the current level, starting at 1.
func (p *Progression) Level() int { return p.level }

// Lines returns the total number of cleared rows.
func (p *Progression) Lines() int { return p.lines }

// FallInterval returns the time between automatic drops.
func (p *Progression) FallInterval() time.Duration { return p.fallInterval }
