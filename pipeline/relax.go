// Package pipeline implements relax() (C8): the end-to-end orchestration
// wiring the trace enumerator, the QE driver and the polyhedron
// optimizer together, plus the per-phase timing probes of C9.
package pipeline

import (
	"fmt"
	"math/big"

	"github.com/relaxer-go/relaxer/dump"
	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/pareto"
	"github.com/relaxer-go/relaxer/polyhedron"
	"github.com/relaxer-go/relaxer/qe"
	"github.com/relaxer-go/relaxer/ta"
	"github.com/relaxer-go/relaxer/trace"
	"github.com/sirupsen/logrus"
)

// defaultEpsilon is the strict-to-non-strict conversion margin used when
// the caller supplies none, matching spec §4.8 step 1's default.
var defaultEpsilon = big.NewRat(1, 10)

// Options configures a Relax run. GridPoints <= 0 and Epsilon == nil
// fall back to the optimizer's and this package's defaults respectively.
type Options struct {
	Depth      int
	GridPoints int
	Epsilon    *big.Rat
	Dump       dump.Handler
	Oracle     qe.Oracle
	Debug      bool
}

// Result is the outcome of relax(): the maximal Pareto set of relaxation
// vectors for which the system's safety properties hold over every
// trace up to Options.Depth, whether that result is "supported" (proven
// via a single conjunctive case, spec §4.8/§8), and the timing/counter
// stats gathered along the way.
type Result struct {
	Set        *pareto.Set
	Supported  bool
	Stats      *Stats
	DNF        lra.DNFFormula
	TraceCount int
}

// Relax runs spec §4.9's top-level orchestration over system: enumerate
// traces to Options.Depth, eliminate quantifiers trace-by-trace via the
// QE driver, then maximize the resulting disjunctive constraint set over
// the relaxation variables.
func Relax(system ta.System, opts Options) (*Result, error) {
	epsilon := opts.Epsilon
	if epsilon == nil {
		epsilon = defaultEpsilon
	}
	oracle := opts.Oracle
	if oracle == nil {
		oracle = qe.FourierMotzkinOracle{}
	}

	stats := NewStats()

	var iter *trace.DFSTraceIterator
	if err := stats.Track(PhaseTraceGeneration, func() error {
		var err error
		iter, err = trace.NewDFSTraceIterator(system, opts.Depth)
		return err
	}); err != nil {
		return nil, fmt.Errorf("pipeline: building trace iterator: %w", err)
	}

	driver := qe.NewDriver(oracle, opts.Dump)
	driver.Probe = stats
	driver.Debug = opts.Debug
	counting := &countingSource{inner: iter}

	dnf, err := driver.Run(counting)
	if err != nil {
		return nil, fmt.Errorf("pipeline: quantifier elimination: %w", err)
	}
	stats.TraceCount = counting.count
	stats.DNFTermCount = len(dnf.Terms)

	logrus.Infof("pipeline: enumerated %d traces, %d DNF terms", stats.TraceCount, stats.DNFTermCount)

	vars := make([]lra.Variable, system.NumOfRelaxations())
	for i := range vars {
		vars[i] = lra.RelaxationVariable{Index: i}
	}

	set := pareto.NewSet()
	var supported bool
	if err := stats.Track(PhaseOptimization, func() error {
		var err error
		set, supported, err = polyhedron.MaximizeRelaxation(vars, dnf, epsilon, opts.GridPoints)
		return err
	}); err != nil {
		return nil, fmt.Errorf("pipeline: optimization: %w", err)
	}
	stats.RelaxationCount = set.Len()

	logrus.Infof("pipeline: %d maximal relaxations found (supported=%v)", stats.RelaxationCount, supported)

	return &Result{Set: set, Supported: supported, Stats: stats, DNF: dnf, TraceCount: stats.TraceCount}, nil
}

// countingSource wraps a trace.DFSTraceIterator to count bundles as they
// are drained, since the driver itself doesn't expose that count.
type countingSource struct {
	inner *trace.DFSTraceIterator
	count int
}

func (c *countingSource) Next() (*trace.TraceConstraintBundle, bool, error) {
	bundle, ok, err := c.inner.Next()
	if ok {
		c.count++
	}
	return bundle, ok, err
}
