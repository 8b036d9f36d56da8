package pipeline

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Phase names the pipeline stages stats.go's accumulator tracks (spec
// §4.9/§9 "stats probes").
type Phase string

const (
	PhaseTraceGeneration       Phase = "trace_generation"
	PhaseQuantifierElimination Phase = "quantifier_elimination"
	PhaseProcessing            Phase = "processing"
	PhaseOptimization          Phase = "optimization"
)

// Stats accumulates monotonic wall-clock time per phase across a Relax
// run, plus the counters spec §4.9 calls for (trace count, relaxation
// count, DNF term count). Go has no portable process_time() without
// cgo, so time.Now() deltas substitute for the original's CPU-time
// probe — a deliberate substitution, not a silent omission.
type Stats struct {
	durations map[Phase]time.Duration

	TraceCount      int
	RelaxationCount int
	DNFTermCount    int
}

// NewStats builds an empty accumulator.
func NewStats() *Stats {
	return &Stats{durations: map[Phase]time.Duration{}}
}

// Track records the wall-clock duration of fn under phase.
func (s *Stats) Track(phase Phase, fn func() error) error {
	start := time.Now()
	err := fn()
	s.durations[phase] += time.Since(start)
	return err
}

// Add accumulates an externally measured duration under phase, for
// callers that can't express their work as a single fn (e.g. a loop
// whose per-iteration timing also feeds TraceCount).
func (s *Stats) Add(phase Phase, d time.Duration) {
	s.durations[phase] += d
}

// Observe implements qe.Probe, letting a Stats accumulator be wired
// straight into a qe.Driver to collect its per-bundle phase timings
// (trace_generation, processing, quantifier_elimination) alongside this
// package's own optimization timing.
func (s *Stats) Observe(phase string, d time.Duration) {
	s.Add(Phase(phase), d)
}

// Duration returns the accumulated time for phase.
func (s *Stats) Duration(phase Phase) time.Duration {
	return s.durations[phase]
}

// Seconds returns every tracked phase's accumulated duration in
// seconds, keyed by phase name, the shape the JSON stats writer (spec
// §6.4) emits.
func (s *Stats) Seconds() map[string]float64 {
	out := make(map[string]float64, len(s.durations))
	for phase, d := range s.durations {
		out[string(phase)] = d.Seconds()
	}
	return out
}

// TotalSeconds sums every phase's duration, using gonum's floats.Sum
// over the per-phase values rather than a hand-rolled accumulator loop.
func (s *Stats) TotalSeconds() float64 {
	vals := make([]float64, 0, len(s.durations))
	for _, d := range s.durations {
		vals = append(vals, d.Seconds())
	}
	if len(vals) == 0 {
		return 0
	}
	return floats.Sum(vals)
}

// SlowestPhase reports the phase with the largest accumulated duration
// and its value in seconds, using gonum's floats.MaxIdx over the
// aligned keys/values so the comparison logic isn't hand-rolled twice.
func (s *Stats) SlowestPhase() (Phase, float64) {
	if len(s.durations) == 0 {
		return "", 0
	}
	phases := make([]Phase, 0, len(s.durations))
	vals := make([]float64, 0, len(s.durations))
	for phase, d := range s.durations {
		phases = append(phases, phase)
		vals = append(vals, d.Seconds())
	}
	idx := floats.MaxIdx(vals)
	return phases[idx], vals[idx]
}
