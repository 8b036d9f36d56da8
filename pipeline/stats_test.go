package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_TotalSecondsSumsEveryTrackedPhase(t *testing.T) {
	s := NewStats()
	s.Add(PhaseTraceGeneration, 100*time.Millisecond)
	s.Add(PhaseOptimization, 250*time.Millisecond)

	assert.InDelta(t, 0.35, s.TotalSeconds(), 1e-9)
}

func TestStats_TotalSecondsIsZeroWhenEmpty(t *testing.T) {
	s := NewStats()
	assert.Equal(t, 0.0, s.TotalSeconds())
}

func TestStats_SlowestPhaseReportsTheLargestDuration(t *testing.T) {
	s := NewStats()
	s.Add(PhaseTraceGeneration, 10*time.Millisecond)
	s.Add(PhaseQuantifierElimination, 400*time.Millisecond)
	s.Add(PhaseOptimization, 50*time.Millisecond)

	phase, seconds := s.SlowestPhase()
	assert.Equal(t, PhaseQuantifierElimination, phase)
	assert.InDelta(t, 0.4, seconds, 1e-9)
}

func TestStats_SlowestPhaseIsEmptyWhenNoPhasesTracked(t *testing.T) {
	s := NewStats()
	phase, seconds := s.SlowestPhase()
	assert.Equal(t, Phase(""), phase)
	assert.Equal(t, 0.0, seconds)
}
