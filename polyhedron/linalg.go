package polyhedron

import "math/big"

// rref reduces rows (each a slice of equal length) to reduced row-echelon
// form in place using exact rational arithmetic, and returns the pivot
// column chosen for each row, or -1 if the row reduced to all zeros.
// There is no numerical-stability concern to guard against (big.Rat is
// exact), so pivot selection is simply "first nonzero entry in column".
func rref(rows [][]*big.Rat) []int {
	numRows := len(rows)
	if numRows == 0 {
		return nil
	}
	numCols := len(rows[0])
	pivotRow := make([]int, numRows)
	for i := range pivotRow {
		pivotRow[i] = -1
	}

	r := 0
	for c := 0; c < numCols && r < numRows; c++ {
		pivot := -1
		for i := r; i < numRows; i++ {
			if rows[i][c].Sign() != 0 {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue
		}
		rows[r], rows[pivot] = rows[pivot], rows[r]

		inv := new(big.Rat).Inv(rows[r][c])
		for j := 0; j < numCols; j++ {
			rows[r][j] = new(big.Rat).Mul(rows[r][j], inv)
		}

		for i := 0; i < numRows; i++ {
			if i == r {
				continue
			}
			factor := rows[i][c]
			if factor.Sign() == 0 {
				continue
			}
			for j := 0; j < numCols; j++ {
				term := new(big.Rat).Mul(factor, rows[r][j])
				rows[i][j] = new(big.Rat).Sub(rows[i][j], term)
			}
		}

		pivotRow[r] = c
		r++
	}

	return pivotRow
}

// solveSquare solves A*x = b for an n x n system via rref on the
// augmented matrix. ok is false if A is singular.
func solveSquare(a [][]*big.Rat, b []*big.Rat) (x []*big.Rat, ok bool) {
	n := len(a)
	rows := make([][]*big.Rat, n)
	for i := range a {
		row := make([]*big.Rat, n+1)
		copy(row, a[i])
		row[n] = b[i]
		rows[i] = row
	}

	pivots := rref(rows)

	byCol := make(map[int]int, n)
	for i, c := range pivots {
		if c == -1 || c >= n {
			return nil, false
		}
		byCol[c] = i
	}
	if len(byCol) != n {
		return nil, false
	}

	x = make([]*big.Rat, n)
	for col := 0; col < n; col++ {
		row := byCol[col]
		x[col] = new(big.Rat).Set(rows[row][n])
	}
	return x, true
}

// nullSpaceVector finds a nonzero vector in the null space of an
// (n-1) x n homogeneous system, when that null space is exactly
// one-dimensional (rank n-1). ok is false otherwise.
func nullSpaceVector(a [][]*big.Rat, n int) (x []*big.Rat, ok bool) {
	rows := make([][]*big.Rat, len(a))
	for i, row := range a {
		cp := make([]*big.Rat, n)
		copy(cp, row)
		rows[i] = cp
	}

	pivots := rref(rows)

	pivotCols := map[int]bool{}
	rank := 0
	for _, c := range pivots {
		if c != -1 {
			pivotCols[c] = true
			rank++
		}
	}
	if rank != n-1 {
		return nil, false
	}

	free := -1
	for c := 0; c < n; c++ {
		if !pivotCols[c] {
			free = c
			break
		}
	}
	if free == -1 {
		return nil, false
	}

	x = make([]*big.Rat, n)
	for i := range x {
		x[i] = big.NewRat(0, 1)
	}
	x[free] = big.NewRat(1, 1)

	for i, c := range pivots {
		if c == -1 {
			continue
		}
		x[c] = new(big.Rat).Neg(rows[i][free])
	}
	return x, true
}
