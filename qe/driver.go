package qe

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/relaxer-go/relaxer/dump"
	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/normalform"
	"github.com/relaxer-go/relaxer/rip"
	"github.com/relaxer-go/relaxer/trace"
	"github.com/sirupsen/logrus"
)

// bundleSource is the subset of trace.DFSTraceIterator the driver
// consumes — a pull-based producer of trace constraint bundles.
type bundleSource interface {
	Next() (*trace.TraceConstraintBundle, bool, error)
}

// Driver runs the QE pipeline of spec §4.6: for every trace bundle,
// build its quantified sentence, eliminate the quantifier via Oracle,
// reabsorb through CNF + interval propagation, and accumulate into a
// global disjunctive-normal-form result.
type Driver struct {
	Oracle Oracle
	Dump   dump.Handler

	// Probe receives per-phase timing observations (spec §4.9). nil is
	// equivalent to a no-op probe; set after NewDriver if a caller wants
	// to collect them.
	Probe Probe

	// Debug, when true, re-derives each CNF normal-form transform with
	// normalform.CheckEquivalent and logs a warning on mismatch, the
	// brute-force stand-in for an SMT-backed validity check (--debug).
	Debug bool

	sinks map[string]dump.Sink
}

// NewDriver builds a Driver with the given oracle. dumper may be nil, in
// which case every dump write is discarded.
func NewDriver(oracle Oracle, dumper dump.Handler) *Driver {
	if dumper == nil {
		dumper = dump.NoOpHandler{}
	}
	return &Driver{Oracle: oracle, Dump: dumper, sinks: map[string]dump.Sink{}}
}

func (d *Driver) observe(phase string, start time.Time) {
	if d.Probe == nil {
		return
	}
	d.Probe.Observe(phase, time.Since(start))
}

func nonNegative(v lra.Variable) lra.Formula {
	one := big.NewRat(1, 1)
	zero := big.NewRat(0, 1)
	return lra.NewInequality(lra.NewSum(lra.NewSummand(one, v)), lra.GreaterEqual, zero)
}

// Run drains src to completion, returning the global DNF result spec
// §4.6's closing paragraph describes ("conjoin all accumulated results,
// CNF+RIP+CNF, then DNF-transform, and materialize a DNFFormula").
func (d *Driver) Run(src bundleSource) (lra.DNFFormula, error) {
	var accumulated []lra.Formula

	w := 0
	for {
		start := time.Now()
		bundle, ok, err := src.Next()
		d.observe("trace_generation", start)
		if err != nil {
			return lra.DNFFormula{}, fmt.Errorf("qe: trace enumeration: %w", err)
		}
		if !ok {
			break
		}

		qf, err := d.processBundle(w, bundle)
		if err != nil {
			return lra.DNFFormula{}, err
		}
		accumulated = append(accumulated, qf)
		w++
	}

	var combined lra.Formula
	if len(accumulated) == 0 {
		combined = lra.TRUE
	} else {
		combined = lra.NewAnd(accumulated...)
	}

	reabsorbed, err := d.reabsorb(combined)
	if err != nil {
		return lra.DNFFormula{}, err
	}

	dnf := normalform.DNF(reabsorbed)
	d.writeDump("qf_dnf_formula", "final.txt", dnf.String())
	return materializeDNF(dnf), nil
}

// processBundle implements the per-bundle steps 1-4 of spec §4.6, timing
// "processing" (everything around the oracle call) separately from
// "quantifier_elimination" (the oracle call itself), matching the
// original's runtime dictionary (spec §4.9).
func (d *Driver) processBundle(w int, bundle *trace.TraceConstraintBundle) (lra.Formula, error) {
	logrus.Debugf("qe: processing trace bundle %d", w)
	processingStart := time.Now()

	if encoded, err := json.Marshal(bundle.SymbolicTrace); err == nil {
		d.writeDump("trace", fmt.Sprintf("%d.json", w), string(encoded))
	} else {
		logrus.Warnf("dump: trace %d: marshaling symbolic trace: %v", w, err)
	}

	var sideConditions []lra.Formula
	for _, v := range bundle.RelaxationVars {
		sideConditions = append(sideConditions, nonNegative(v))
	}
	traceFormula := bundle.TraceFormula()
	for _, v := range bundle.DeltaVars {
		traceFormula = lra.NewAnd(traceFormula, nonNegative(v))
	}
	d.writeDump("trace_formula", fmt.Sprintf("%d.txt", w), traceFormula.String())

	body := lra.NewOr(lra.NewNot(traceFormula), bundle.PropertiesFormula())
	sentence := Sentence{Bound: bundle.DeltaVars, Body: body, Extra: sideConditions}

	d.writeDump("qe_input", fmt.Sprintf("%d.txt", w), sentenceString(sentence))
	d.observe("processing", processingStart)

	qeStart := time.Now()
	qf, err := d.Oracle.Eliminate(sentence)
	d.observe("quantifier_elimination", qeStart)
	if err != nil {
		return nil, fmt.Errorf("qe: bundle %d: %w", w, err)
	}
	if err := requireQuantifierFree(qf); err != nil {
		return nil, fmt.Errorf("qe: bundle %d: %w", w, err)
	}

	processingStart = time.Now()
	d.writeDump("qe_output", fmt.Sprintf("%d.txt", w), qf.String())
	result, err := d.cnfRipCnf(w, qf)
	d.observe("processing", processingStart)
	return result, err
}

// cnfRipCnf is step 4 ("CNF-transform the result, propagate intervals,
// CNF-transform again") shared between per-bundle processing and the
// final accumulation pass.
func (d *Driver) cnfRipCnf(w int, f lra.Formula) (lra.Formula, error) {
	cnf := normalform.CNF(f)
	d.checkEquivalent("qe: bundle %d: CNF", w, f, cnf)
	d.writeDump("rip_input", fmt.Sprintf("%d.txt", w), cnf.String())

	propagated, err := rip.Propagate(cnf)
	if err != nil {
		return nil, fmt.Errorf("qe: rip: %w", err)
	}
	d.writeDump("rip_output", fmt.Sprintf("%d.txt", w), propagated.String())

	reCnf := normalform.CNF(propagated)
	d.checkEquivalent("qe: bundle %d: re-CNF", w, propagated, reCnf)
	d.writeDump("qf_cnf_formula", fmt.Sprintf("%d.txt", w), reCnf.String())
	return reCnf, nil
}

// checkEquivalent re-derives before's transform into after via
// normalform.CheckEquivalent and warns on mismatch, when Debug is set.
func (d *Driver) checkEquivalent(label string, w int, before, after lra.Formula) {
	if !d.Debug {
		return
	}
	if !normalform.CheckEquivalent(before, after) {
		logrus.Warnf(label+": transform changed meaning", w)
	}
}

func (d *Driver) reabsorb(combined lra.Formula) (lra.Formula, error) {
	return d.cnfRipCnf(-1, combined)
}

// writeDump reuses one Sink per location across the whole run — Sink
// itself errors on a repeated name, so the driver must open each
// location exactly once and write every bundle's file through that same
// Sink. Dump failures are logged and otherwise ignored: they must never
// abort the pipeline.
func (d *Driver) writeDump(location, filename, text string) {
	if d.sinks == nil {
		d.sinks = map[string]dump.Sink{}
	}
	sink, ok := d.sinks[location]
	if !ok {
		var err error
		sink, err = d.Dump.Sink(location)
		if err != nil {
			logrus.Warnf("dump: %s: %v", location, err)
			return
		}
		d.sinks[location] = sink
	}
	if err := sink.Write(filename, text); err != nil {
		logrus.Warnf("dump: %s/%s: %v", location, filename, err)
	}
}

func requireQuantifierFree(f lra.Formula) error {
	// lra.Formula's closed sum type carries no quantifier variant, so this
	// can never actually fire; it documents spec §7's "QE failure" policy
	// for a future oracle binding that might violate it.
	_ = f
	return nil
}

func materializeDNF(f lra.Formula) lra.DNFFormula {
	var terms [][]lra.Inequality
	disjuncts := []lra.Formula{f}
	if or, ok := f.(lra.Or); ok {
		disjuncts = or.Args
	}
	for _, d := range disjuncts {
		term, sat, err := toConjunctiveTerm(d)
		if err != nil || !sat {
			continue
		}
		terms = append(terms, term)
	}
	return lra.DNFFormula{Terms: terms}
}

func sentenceString(s Sentence) string {
	out := "FORALL "
	for i, v := range s.Bound {
		if i > 0 {
			out += ", "
		}
		out += v.Identifier()
	}
	out += ". " + s.Body.String()
	for _, e := range s.Extra {
		out += " AND " + e.String()
	}
	return out
}
