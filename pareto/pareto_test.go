package pareto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddRemovesDominated(t *testing.T) {
	s := NewSet()
	s.Add(Point{1, 1})
	s.Add(Point{3, 3})

	assert.Len(t, s.Points(), 1)
	assert.True(t, s.Points()[0].Equal(Point{3, 3}))
}

func TestSet_AddIgnoresDominatedNewPoint(t *testing.T) {
	s := NewSet()
	s.Add(Point{3, 3})
	s.Add(Point{1, 1})

	assert.Len(t, s.Points(), 1)
	assert.True(t, s.Points()[0].Equal(Point{3, 3}))
}

func TestSet_KeepsIncomparablePoints(t *testing.T) {
	s := NewSet()
	s.Add(Point{1, 5})
	s.Add(Point{5, 1})

	assert.Len(t, s.Points(), 2)
}

func TestSet_NoStoredPairDominates(t *testing.T) {
	s := NewSet()
	for _, p := range []Point{{1, 5}, {5, 1}, {3, 3}, {0, 0}, {4, 4}} {
		s.Add(p)
	}
	pts := s.Points()
	for i := range pts {
		for j := range pts {
			if i == j {
				continue
			}
			assert.False(t, dominates(pts[i], pts[j]), "%v should not dominate %v", pts[i], pts[j])
		}
	}
}

func TestSet_InfiniteCoordinateDominates(t *testing.T) {
	s := NewSet()
	s.Add(Point{1, 1})
	s.Add(Point{math.Inf(1), 1})

	assert.Len(t, s.Points(), 1)
	assert.True(t, math.IsInf(s.Points()[0][0], 1))
}

func TestPoint_EqualTreatsInfinityAsEqual(t *testing.T) {
	a := Point{math.Inf(1), 2}
	b := Point{math.Inf(1), 2}
	assert.True(t, a.Equal(b))
}
