// Package spatial provides a uniform grid index over player positions for
// radius queries.
package spatial

import (
	"cmp"
	"math"
	"slices"

	"github.com/okian/lineup/internal/domain/model"
)

// DefaultCellSize suits a normalized 0..1 field.
const DefaultCellSize = 0.1

type cell struct{ cx, cy int }

// Grid buckets players by floor(x/cell), floor(y/cell). It is rebuilt per
// invocation and not safe for concurrent mutation.
type Grid struct {
	cellSize float64
	buckets  map[cell][]model.Player
	count    int
	// lo and hi bound the occupied cells.
	lo, hi cell
}

// NewGrid creates an empty grid. Non-positive sizes fall back to DefaultCellSize.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = DefaultCellSize
	}
	return &Grid{cellSize: cellSize, buckets: make(map[cell][]model.Player)}
}

// Insert adds p at its current position.
func (g *Grid) Insert(p model.Player) {
	c := g.cellOf(p.Position.X, p.Position.Y)
	if g.count == 0 {
		g.lo, g.hi = c, c
	} else {
		g.lo = cell{min(g.lo.cx, c.cx), min(g.lo.cy, c.cy)}
		g.hi = cell{max(g.hi.cx, c.cx), max(g.hi.cy, c.cy)}
	}
	g.buckets[c] = append(g.buckets[c], p)
	g.count++
}

// Len returns the number of indexed players.
func (g *Grid) Len() int { return g.count }

// QueryRadius returns players within distance r of (x, y), inclusive. Results
// are ordered by cell (x then y) and insertion order within a cell.
func (g *Grid) QueryRadius(x, y, r float64) []model.Player {
	if r < 0 || g.count == 0 || math.IsNaN(r) || math.IsNaN(x) || math.IsNaN(y) {
		return nil
	}
	// Cells outside the occupied range hold nobody, however large r is.
	lo := cell{g.clamp(x-r, g.lo.cx, g.hi.cx), g.clamp(y-r, g.lo.cy, g.hi.cy)}
	hi := cell{g.clamp(x+r, g.lo.cx, g.hi.cx), g.clamp(y+r, g.lo.cy, g.hi.cy)}
	r2 := r * r

	var out []model.Player
	for _, c := range g.cellsIn(lo, hi) {
		if !g.intersects(c, x, y, r2) {
			continue
		}
		for _, p := range g.buckets[c] {
			dx, dy := p.Position.X-x, p.Position.Y-y
			if dx*dx+dy*dy <= r2 {
				out = append(out, p)
			}
		}
	}
	return out
}

// cellsIn lists the cells of the box [lo, hi] in x then y order. Sparse
// grids walk their buckets instead of the box.
func (g *Grid) cellsIn(lo, hi cell) []cell {
	box := float64(hi.cx-lo.cx+1) * float64(hi.cy-lo.cy+1)
	if box > float64(len(g.buckets)) {
		out := make([]cell, 0, len(g.buckets))
		for c := range g.buckets {
			if c.cx >= lo.cx && c.cx <= hi.cx && c.cy >= lo.cy && c.cy <= hi.cy {
				out = append(out, c)
			}
		}
		slices.SortFunc(out, func(a, b cell) int {
			if a.cx != b.cx {
				return cmp.Compare(a.cx, b.cx)
			}
			return cmp.Compare(a.cy, b.cy)
		})
		return out
	}
	out := make([]cell, 0, int(box))
	for cx := lo.cx; cx <= hi.cx; cx++ {
		for cy := lo.cy; cy <= hi.cy; cy++ {
			out = append(out, cell{cx, cy})
		}
	}
	return out
}

// Clear drops every bucket, keeping the cell size.
func (g *Grid) Clear() {
	g.buckets = make(map[cell][]model.Player)
	g.count = 0
	g.lo, g.hi = cell{}, cell{}
}

func (g *Grid) cellOf(x, y float64) cell {
	return cell{int(math.Floor(x / g.cellSize)), int(math.Floor(y / g.cellSize))}
}

// clamp returns the cell index of v limited to [lo, hi]. Clamping happens
// before the int conversion so infinite coordinates stay in range.
func (g *Grid) clamp(v float64, lo, hi int) int {
	c := math.Floor(v / g.cellSize)
	return int(math.Max(float64(lo), math.Min(float64(hi), c)))
}

// intersects tests the cell's bounding box against the query circle.
func (g *Grid) intersects(c cell, x, y, r2 float64) bool {
	minX, minY := float64(c.cx)*g.cellSize, float64(c.cy)*g.cellSize
	nx := math.Max(minX, math.Min(x, minX+g.cellSize))
	ny := math.Max(minY, math.Min(y, minY+g.cellSize))
	dx, dy := nx-x, ny-y
	return dx*dx+dy*dy <= r2
}
