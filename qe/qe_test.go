package qe

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/relaxer-go/relaxer/dump"
	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delta0() lra.Variable { return lra.DeltaVariable{Depth: 0} }
func relax0() lra.Variable { return lra.RelaxationVariable{Index: 0} }

func sum1(v lra.Variable) lra.Sum {
	return lra.NewSum(lra.NewSummand(big.NewRat(1, 1), v))
}

func TestEliminateOne_ProjectsBoundedDifference(t *testing.T) {
	// delta0 >= 0, delta0 <= 5, delta0 - relax0 > 0 (i.e. relax0 < delta0).
	d, r := big.NewRat(1, 1), big.NewRat(-1, 1)
	term := []lra.Inequality{
		lra.NewInequality(sum1(delta0()), lra.GreaterEqual, big.NewRat(0, 1)),
		lra.NewInequality(sum1(delta0()), lra.LessEqual, big.NewRat(5, 1)),
		lra.NewInequality(lra.NewSum(lra.NewSummand(d, delta0()), lra.NewSummand(r, relax0())), lra.GreaterThan, big.NewRat(0, 1)),
	}

	out, feasible := eliminateOne(term, delta0())
	require.True(t, feasible)

	// Every surviving inequality must no longer mention delta0.
	for _, ineq := range out {
		for _, s := range ineq.Left.Summands {
			assert.NotEqual(t, delta0().Identifier(), s.Var.Identifier())
		}
	}
	// The only non-trivial combination is relax0 < 5.
	require.Len(t, out, 1)
	assert.Equal(t, "1*relax_0 < 5", out[0].String())
}

func TestEliminateOne_ContradictoryBoundsAreInfeasible(t *testing.T) {
	term := []lra.Inequality{
		lra.NewInequality(sum1(delta0()), lra.GreaterEqual, big.NewRat(10, 1)),
		lra.NewInequality(sum1(delta0()), lra.LessEqual, big.NewRat(3, 1)),
	}
	_, feasible := eliminateOne(term, delta0())
	assert.False(t, feasible)
}

func TestEliminateOne_NoOccurrenceIsNoOp(t *testing.T) {
	term := []lra.Inequality{
		lra.NewInequality(sum1(relax0()), lra.GreaterEqual, big.NewRat(0, 1)),
	}
	out, feasible := eliminateOne(term, delta0())
	require.True(t, feasible)
	require.Len(t, out, 1)
	assert.Equal(t, term[0].String(), out[0].String())
}

func TestFourierMotzkinOracle_ProjectsWorstCaseBound(t *testing.T) {
	// Forall delta0 in [0,5]: relax0 >= delta0. Worst case delta0=5 forces
	// relax0 >= 5.
	traceAtom := lra.NewInequality(sum1(delta0()), lra.LessEqual, big.NewRat(5, 1))
	nonNeg := lra.NewInequality(sum1(delta0()), lra.GreaterEqual, big.NewRat(0, 1))
	property := lra.NewInequality(
		lra.NewSum(lra.NewSummand(big.NewRat(1, 1), relax0()), lra.NewSummand(big.NewRat(-1, 1), delta0())),
		lra.GreaterEqual, big.NewRat(0, 1))

	body := lra.NewOr(lra.NewNot(lra.NewAnd(traceAtom, nonNeg)), property)
	sentence := Sentence{
		Bound: []lra.Variable{delta0()},
		Body:  body,
		Extra: []lra.Formula{lra.NewInequality(sum1(relax0()), lra.GreaterEqual, big.NewRat(0, 1))},
	}

	out, err := FourierMotzkinOracle{}.Eliminate(sentence)
	require.NoError(t, err)

	for k := range out.Atoms() {
		assert.NotContains(t, k, "delta_0")
	}

	// Elimination projects delta0 out leaving NOT(relax0 < 5) AND relax0 >= 0
	// — arithmetically "relax0 >= 5", surfaced here as a negated atom since
	// Eliminate re-negates the projected existential rather than folding
	// the negation back into the symbol.
	assert.NotEqual(t, lra.TRUE.Key(), out.Key())
	assert.NotEqual(t, lra.FALSE.Key(), out.Key())
	wantAtom := lra.NewInequality(sum1(relax0()), lra.LessThan, big.NewRat(5, 1)).Key()
	_, found := out.Atoms()[wantAtom]
	assert.True(t, found, "expected relax_0 < 5 among eliminated atoms, got %s", out.String())
}

// With no bound variables, Eliminate's negate-DNF-renegate round trip must
// preserve relax0 >= 0 arithmetically — surfaced as NOT(relax0 < 0), the
// symbol-negation of the original atom, since the oracle never folds a
// negation back into its symbol.
func TestFourierMotzkinOracle_NoBoundVariablesPreservesAtom(t *testing.T) {
	body := lra.Formula(lra.NewInequality(sum1(relax0()), lra.GreaterEqual, big.NewRat(0, 1)))
	sentence := Sentence{Bound: nil, Body: body}

	out, err := FourierMotzkinOracle{}.Eliminate(sentence)
	require.NoError(t, err)

	wantAtom := lra.NewInequality(sum1(relax0()), lra.LessThan, big.NewRat(0, 1)).Key()
	foundNegated := false
	for k, a := range out.Atoms() {
		if k == wantAtom {
			foundNegated = true
			_ = a
		}
	}
	assert.True(t, foundNegated, "expected relax_0 < 0 among out's atoms, got %s", out.String())
}

type fakeBundleSource struct {
	bundles []*trace.TraceConstraintBundle
	idx     int
}

func (f *fakeBundleSource) Next() (*trace.TraceConstraintBundle, bool, error) {
	if f.idx >= len(f.bundles) {
		return nil, false, nil
	}
	b := f.bundles[f.idx]
	f.idx++
	return b, true, nil
}

func TestDriver_RunMaterializesDNF(t *testing.T) {
	bundle := &trace.TraceConstraintBundle{
		SymbolicTrace:  nil,
		RelaxationVars: []lra.Variable{relax0()},
		DeltaVars:      []lra.Variable{delta0()},
		Inequalities: [][]lra.Formula{
			{lra.NewInequality(sum1(delta0()), lra.LessEqual, big.NewRat(5, 1))},
		},
		PropertyFormulas: [][]lra.Formula{
			{lra.NewInequality(
				lra.NewSum(lra.NewSummand(big.NewRat(1, 1), relax0()), lra.NewSummand(big.NewRat(-1, 1), delta0())),
				lra.GreaterEqual, big.NewRat(0, 1))},
		},
	}

	driver := NewDriver(FourierMotzkinOracle{}, dump.NoOpHandler{})
	src := &fakeBundleSource{bundles: []*trace.TraceConstraintBundle{bundle}}

	dnf, err := driver.Run(src)
	require.NoError(t, err)
	assert.NotEmpty(t, dnf.Terms)
}

func TestDriver_RunWithDumpHandler(t *testing.T) {
	dir := t.TempDir()
	bundle := func() *trace.TraceConstraintBundle {
		return &trace.TraceConstraintBundle{
			RelaxationVars: []lra.Variable{relax0()},
			DeltaVars:      []lra.Variable{delta0()},
			Inequalities: [][]lra.Formula{
				{lra.NewInequality(sum1(delta0()), lra.LessEqual, big.NewRat(5, 1))},
			},
			PropertyFormulas: [][]lra.Formula{
				{lra.NewInequality(sum1(relax0()), lra.GreaterEqual, big.NewRat(0, 1))},
			},
		}
	}
	driver := NewDriver(FourierMotzkinOracle{}, dump.NewDirectoryHandler(dir))
	// Two bundles exercise the same dump locations twice, checking that the
	// driver reuses one Sink per location rather than re-opening it (which
	// DirectoryHandler rejects with ErrDuplicateSink).
	src := &fakeBundleSource{bundles: []*trace.TraceConstraintBundle{bundle(), bundle()}}

	_, err := driver.Run(src)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "trace_formula"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "expected one trace_formula dump per bundle")
}

type fakeProbe struct {
	observed map[string]int
}

func (p *fakeProbe) Observe(phase string, _ time.Duration) {
	if p.observed == nil {
		p.observed = map[string]int{}
	}
	p.observed[phase]++
}

func TestDriver_RunReportsPhasesToProbe(t *testing.T) {
	bundle := &trace.TraceConstraintBundle{
		RelaxationVars: []lra.Variable{relax0()},
		DeltaVars:      []lra.Variable{delta0()},
		Inequalities: [][]lra.Formula{
			{lra.NewInequality(sum1(delta0()), lra.LessEqual, big.NewRat(5, 1))},
		},
		PropertyFormulas: [][]lra.Formula{
			{lra.NewInequality(sum1(relax0()), lra.GreaterEqual, big.NewRat(0, 1))},
		},
	}
	probe := &fakeProbe{}
	driver := NewDriver(FourierMotzkinOracle{}, dump.NoOpHandler{})
	driver.Probe = probe
	src := &fakeBundleSource{bundles: []*trace.TraceConstraintBundle{bundle}}

	_, err := driver.Run(src)
	require.NoError(t, err)

	assert.Positive(t, probe.observed["trace_generation"])
	assert.Positive(t, probe.observed["processing"])
	assert.Positive(t, probe.observed["quantifier_elimination"])
}
