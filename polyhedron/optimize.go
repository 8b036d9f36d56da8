package polyhedron

import (
	"math"
	"math/big"

	"github.com/relaxer-go/relaxer/pareto"
	"gonum.org/v1/gonum/floats"
)

func ratToFloat(v []*big.Rat) []float64 {
	out := make([]float64, len(v))
	for i, r := range v {
		f, _ := r.Float64()
		out[i] = f
	}
	return out
}

// unboundedMask reports, per coordinate, whether some ray has a nonzero
// component there (spec §4.8 step 3).
func unboundedMask(n int, rays []Ray) []bool {
	mask := make([]bool, n)
	for _, r := range rays {
		for i, c := range r {
			if c.Sign() != 0 {
				mask[i] = true
			}
		}
	}
	return mask
}

// applyMask converts an exact-rational point to a float64 pareto.Point,
// the external-boundary conversion spec §5 (numeric precision) requires,
// overriding masked coordinates with +∞.
func applyMask(v []*big.Rat, mask []bool) pareto.Point {
	p := ratToFloat(v)
	for i, m := range mask {
		if m {
			p[i] = math.Inf(1)
		}
	}
	return pareto.Point(p)
}

func zeroVertex(n int) []*big.Rat {
	z := make([]*big.Rat, n)
	for i := range z {
		z[i] = big.NewRat(0, 1)
	}
	return z
}

// Optimize runs spec §4.8 steps 2-7 for one disjunct's System, adding
// every surviving sample into out. gridPoints is G from step 7 (default
// 2: the edge between two adjacent, non-dominated vertices contributes
// G-1 equally spaced interior samples in addition to the vertices
// themselves).
func Optimize(sys System, gridPoints int, out *pareto.Set) {
	n := len(sys.Vars)
	vertices, rays := Enumerate(sys)

	if len(vertices) == 0 && len(rays) == 0 {
		// Empty polyhedron: infeasible disjunct, skipped per spec §7.
		return
	}

	mask := unboundedMask(n, rays)

	if len(vertices) == 0 {
		out.Add(applyMask(zeroVertex(n), mask))
		return
	}

	masked := make([]pareto.Point, len(vertices))
	for i, v := range vertices {
		masked[i] = applyMask(v, mask)
	}

	dominated := make([]bool, len(vertices))
	for i := range vertices {
		for j := range vertices {
			if i == j {
				continue
			}
			if pareto.Dominates(masked[j], masked[i]) {
				dominated[i] = true
				break
			}
		}
	}

	if gridPoints < 2 {
		gridPoints = 2
	}

	for i := range vertices {
		if dominated[i] {
			continue
		}
		out.Add(masked[i])

		for j := i + 1; j < len(vertices); j++ {
			if dominated[j] {
				continue
			}
			if !adjacent(sys, vertices[i], vertices[j]) {
				continue
			}
			sampleEdge(masked[i], masked[j], gridPoints, mask, out)
		}
	}
}

// sampleEdge adds gridPoints-1 equally spaced interior convex
// combinations between two already-masked endpoints. Masked (unbounded)
// coordinates stay +∞ throughout, since a convex combination involving
// +∞ is itself +∞ for any t in (0,1).
func sampleEdge(a, b pareto.Point, gridPoints int, mask []bool, out *pareto.Set) {
	for k := 1; k < gridPoints; k++ {
		t := float64(k) / float64(gridPoints)

		left := append([]float64(nil), []float64(a)...)
		right := append([]float64(nil), []float64(b)...)
		floats.Scale(1-t, left)
		floats.Scale(t, right)
		floats.Add(left, right)

		for i, m := range mask {
			if m {
				left[i] = math.Inf(1)
			}
		}
		out.Add(pareto.Point(left))
	}
}
