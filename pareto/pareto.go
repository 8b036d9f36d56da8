// Package pareto maintains the maximal antichain of relaxation vectors
// (spec §4.7): the set of points no other point dominates.
package pareto

import "math"

// Point is a relaxation vector over ℝ ∪ {+∞}, one coordinate per
// relaxation variable. +∞ is represented as math.Inf(1).
type Point []float64

// Dominates reports whether p ≻ q: component-wise p[i] >= q[i] for every
// i, with strict inequality in at least one coordinate. Exported for the
// polyhedron optimizer's own pre-filtering pass (spec §4.8 step 6), which
// runs dominance checks before points ever reach a Set.
func Dominates(p, q Point) bool { return dominates(p, q) }

// dominates reports whether p ≻ q: component-wise p[i] >= q[i] for every
// i, with strict inequality in at least one coordinate.
func dominates(p, q Point) bool {
	strict := false
	for i := range p {
		if p[i] < q[i] {
			return false
		}
		if p[i] > q[i] {
			strict = true
		}
	}
	return strict
}

// Equal reports whether p and q have the same coordinates, treating two
// +∞ coordinates as equal.
func (p Point) Equal(q Point) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] == q[i] {
			continue
		}
		if math.IsInf(p[i], 1) && math.IsInf(q[i], 1) {
			continue
		}
		return false
	}
	return true
}

// Set is the maximal antichain maintained under component-wise dominance
// (spec §4.7, §8 invariant 6): no two stored points p != q ever have
// p dominating q.
type Set struct {
	points []Point
}

// NewSet builds an empty Pareto set.
func NewSet() *Set {
	return &Set{}
}

// Add inserts p, removing every existing point p dominates, and does
// nothing if some existing point already dominates p.
func (s *Set) Add(p Point) {
	for _, q := range s.points {
		if dominates(q, p) {
			return
		}
	}

	kept := s.points[:0]
	for _, q := range s.points {
		if !dominates(p, q) {
			kept = append(kept, q)
		}
	}
	s.points = append(kept, p)
}

// Points returns the current maximal antichain. The returned slice must
// not be mutated by the caller.
func (s *Set) Points() []Point {
	return s.points
}

// Len reports the number of points currently stored.
func (s *Set) Len() int { return len(s.points) }
