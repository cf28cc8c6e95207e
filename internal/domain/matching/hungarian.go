// Package matching solves the maximum-weight assignment problem with the
// Kuhn-Munkres (Hungarian) method.
package matching

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Unassigned marks a row matched to a phantom column.
const Unassigned = -1

// Solve returns assignment[i] = column matched to row i so that the total
// score is maximal. Rectangular inputs are squared with zero-score phantom
// rows/columns; rows that land on a phantom column get Unassigned.
//
// Runs in O(n^3) for n = max(rows, cols). Ties resolve to the lowest column
// index, with rows processed in order, so identical inputs give identical
// output.
func Solve(scores [][]float64) []int {
	rows := len(scores)
	if rows == 0 {
		return nil
	}
	cols := 0
	for _, r := range scores {
		cols = max(cols, len(r))
	}
	result := make([]int, rows)
	if cols == 0 {
		for i := range result {
			result[i] = Unassigned
		}
		return result
	}

	cost := costMatrix(scores, rows, cols)
	rowAssign := minimize(cost)

	for i := 0; i < rows; i++ {
		if c := rowAssign[i]; c >= 0 && c < cols {
			result[i] = c
		} else {
			result[i] = Unassigned
		}
	}
	return result
}

// Total sums scores over an assignment, skipping unassigned rows.
func Total(scores [][]float64, assignment []int) float64 {
	sum := 0.0
	for i, c := range assignment {
		if c >= 0 && i < len(scores) && c < len(scores[i]) {
			sum += scores[i][c]
		}
	}
	return sum
}

// costMatrix pads scores to a square matrix of phantom zeros and converts it
// to a minimization instance as cost = max - score.
func costMatrix(scores [][]float64, rows, cols int) *mat.Dense {
	dim := max(rows, cols)
	padded := mat.NewDense(dim, dim, nil)
	for i, r := range scores {
		for j, v := range r {
			if math.IsNaN(v) || v < 0 {
				v = 0
			}
			padded.Set(i, j, v)
		}
	}
	top := mat.Max(padded)

	cost := mat.NewDense(dim, dim, nil)
	cost.Apply(func(_, _ int, v float64) float64 { return top - v }, padded)
	return cost
}

// minimize runs the potential-based shortest augmenting path procedure on a
// square cost matrix and returns the column for each row.
func minimize(cost *mat.Dense) []int {
	dim, _ := cost.Dims()
	inf := math.Inf(1)

	// 1-indexed; index 0 is the virtual column/row.
	u := make([]float64, dim+1)
	v := make([]float64, dim+1)
	p := make([]int, dim+1)   // p[j]: row matched to column j
	way := make([]int, dim+1) // way[j]: previous column on the alternating path
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assign := make([]int, dim)
	for j := 1; j <= dim; j++ {
		if p[j] > 0 {
			assign[p[j]-1] = j - 1
		}
	}
	return assign
}
