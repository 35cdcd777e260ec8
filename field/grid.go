package field

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/backdrop/canvas"
)

// grid buckets points into square cells one connect distance wide, so a
// pair search only visits the 3×3 block around each point.
type grid struct {
	cellSize float64
	cols     int
	rows     int
	originX  float64
	originY  float64
	cells    [][]int // Point indices per cell
	hits     []hit   // Per-point scratch for pairs
}

type hit struct {
	j int
	d float64
}

// newGrid covers a w×h surface plus margin on every side. Points outside
// that area are clamped into the edge cells.
func newGrid(w, h, margin, cellSize float64) *grid {
	cols := int((w+2*margin)/cellSize) + 1
	rows := int((h+2*margin)/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		originX:  -margin,
		originY:  -margin,
		cells:    cells,
	}
}

// reset empties every cell and inserts pts.
func (g *grid) reset(pts []canvas.Point) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i, p := range pts {
		col, row := g.cell(p)
		idx := row*g.cols + col
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// cell returns the clamped column and row for p. Clamping is monotonic, so
// points within one cell width still land in adjacent cells.
func (g *grid) cell(p canvas.Point) (col, row int) {
	col = int((p.X - g.originX) / g.cellSize)
	row = int((p.Y - g.originY) / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// pairs calls fn once for every i < j with pts i and j closer than radius,
// ordered by i then j like a nested scan. radius must not exceed the cell
// size. reset must have been called with pts.
func (g *grid) pairs(pts []canvas.Point, radius float64, fn func(i, j int, d float64)) {
	for i, p := range pts {
		g.hits = g.hits[:0]
		col, row := g.cell(p)
		for dr := -1; dr <= 1; dr++ {
			r := row + dr
			if r < 0 || r >= g.rows {
				continue
			}
			for dc := -1; dc <= 1; dc++ {
				c := col + dc
				if c < 0 || c >= g.cols {
					continue
				}
				for _, j := range g.cells[r*g.cols+c] {
					if j <= i {
						continue
					}
					if d := canvas.Distance(p, pts[j]); d < radius {
						g.hits = append(g.hits, hit{j: j, d: d})
					}
				}
			}
		}

		slices.SortFunc(g.hits, func(a, b hit) int { return cmp.Compare(a.j, b.j) })
		for _, h := range g.hits {
			fn(i, h.j, h.d)
		}
	}
}
