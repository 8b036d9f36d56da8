package polyhedron

import "math/big"

// Vertex is a finite extreme point of a polyhedron.
type Vertex []*big.Rat

// Ray is an extreme direction of a polyhedron's recession cone.
type Ray []*big.Rat

func ratEqual(a, b []*big.Rat) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

func isZero(v []*big.Rat) bool {
	for _, c := range v {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// combinations calls fn with every n-element subset of {0, ..., m-1} (as
// ascending index slices), stopping early if fn returns false.
func combinations(m, n int, fn func(idx []int) bool) {
	if n > m || n < 0 {
		return
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := n - 1
		for i >= 0 && idx[i] == i+m-n {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < n; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Enumerate computes sys's vertex/ray generators via combinatorial
// vertex enumeration: a vertex is the unique solution of some n tight
// constraints that also satisfies every other constraint; an extreme ray
// is a one-dimensional null-space direction of some n-1 tight recession
// constraints that satisfies every constraint's homogeneous form. This is
// a brute-force substitute for the incremental double-description method
// (see DESIGN.md) — correct, but exponential in constraint count, which
// is acceptable at the scale this optimizer runs over relaxation
// coordinates.
func Enumerate(sys System) (vertices []Vertex, rays []Ray) {
	n := len(sys.Vars)
	m := len(sys.A)
	if n == 0 {
		return nil, nil
	}

	combinations(m, n, func(idx []int) bool {
		a := make([][]*big.Rat, n)
		b := make([]*big.Rat, n)
		for i, row := range idx {
			a[i] = sys.A[row]
			b[i] = sys.B[row]
		}
		x, ok := solveSquare(a, b)
		if ok && sys.satisfies(x) {
			dup := false
			for _, v := range vertices {
				if ratEqual(v, x) {
					dup = true
					break
				}
			}
			if !dup {
				vertices = append(vertices, Vertex(x))
			}
		}
		return true
	})

	if n >= 1 && m >= n-1 {
		combinations(m, n-1, func(idx []int) bool {
			a := make([][]*big.Rat, len(idx))
			for i, row := range idx {
				a[i] = sys.A[row]
			}
			d, ok := nullSpaceVector(a, n)
			if !ok || isZero(d) {
				return true
			}

			candidate := d
			if !sys.satisfiesHomogeneous(candidate) {
				neg := make([]*big.Rat, n)
				for i, c := range d {
					neg[i] = new(big.Rat).Neg(c)
				}
				if !sys.satisfiesHomogeneous(neg) {
					return true
				}
				candidate = neg
			}

			dup := false
			for _, r := range rays {
				if ratEqual(r, candidate) {
					dup = true
					break
				}
			}
			if !dup {
				rays = append(rays, Ray(candidate))
			}
			return true
		})
	}

	return vertices, rays
}

// tightRows returns the set of row indices for which v satisfies
// sys.A[i]*v == sys.B[i] exactly.
func tightRows(sys System, v Vertex) map[int]bool {
	tight := map[int]bool{}
	for i, row := range sys.A {
		sum := big.NewRat(0, 1)
		for j, coeff := range row {
			sum.Add(sum, new(big.Rat).Mul(coeff, v[j]))
		}
		if sum.Cmp(sys.B[i]) == 0 {
			tight[i] = true
		}
	}
	return tight
}

// adjacent reports whether v1 and v2 share at least n-1 tight
// constraints — the standard necessary (and, absent degeneracy,
// sufficient) condition for two extreme points of an n-dimensional
// polyhedron to be connected by an edge.
func adjacent(sys System, v1, v2 Vertex) bool {
	t1, t2 := tightRows(sys, v1), tightRows(sys, v2)
	shared := 0
	for i := range t1 {
		if t2[i] {
			shared++
		}
	}
	return shared >= len(sys.Vars)-1
}
