package qe

import "time"

// Probe receives per-phase duration observations from Driver.Run,
// mirroring the original's runtime dictionary (spec §4.9, §9 "stats
// probes"). Per bundle, Observe receives one "trace_generation", one
// "quantifier_elimination" and two "processing" observations (before and
// after the oracle call); one more "trace_generation" covers the Next call
// that reports exhaustion. The final accumulation pass is not observed. A
// Driver with a nil Probe simply skips these observations.
type Probe interface {
	Observe(phase string, d time.Duration)
}
