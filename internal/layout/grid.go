package layout

import (
	"fmt"
	"strings"

	"github.com/danmuck/mosaic/internal/tile"
)

// Grid is a completed placement in row-major order.
type Grid struct {
	N     int
	Cells []tile.Tile
	Stats Stats
}

// Stats describes the effort spent finding a grid.
type Stats struct {
	States   int
	DeadEnds int
	// Branch is the index of the winning initial placement.
	Branch int
}

func (g *Grid) At(row, col int) tile.Tile {
	return g.Cells[row*g.N+col]
}

// TileSide is the pixel side shared by every placed tile.
func (g *Grid) TileSide() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return g.Cells[0].Side()
}

// CornerIDs returns the ids at (0,0), (N-1,0), (0,N-1) and (N-1,N-1) where
// the first coordinate is the column.
func (g *Grid) CornerIDs() [4]int {
	last := g.N - 1
	return [4]int{
		g.At(0, 0).ID,
		g.At(0, last).ID,
		g.At(last, 0).ID,
		g.At(last, last).ID,
	}
}

func (g *Grid) CornerProduct() int64 {
	product := int64(1)
	for _, id := range g.CornerIDs() {
		product *= int64(id)
	}
	return product
}

// IDs returns the tile ids row by row.
func (g *Grid) IDs() [][]int {
	out := make([][]int, g.N)
	for r := range out {
		out[r] = make([]int, g.N)
		for c := range out[r] {
			out[r][c] = g.At(r, c).ID
		}
	}
	return out
}

// Verify checks shape and that every touching edge pair is equal.
func (g *Grid) Verify() error {
	if g.N <= 0 || len(g.Cells) != g.N*g.N {
		return fmt.Errorf("%w: %d cells for side %d", ErrNoValidLayout, len(g.Cells), g.N)
	}
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			cur := g.At(r, c)
			if c+1 < g.N && !edgesLink(cur, g.At(r, c+1), tile.Right) {
				return fmt.Errorf("%w: tiles %d and %d do not share an edge at row %d", ErrNoValidLayout, cur.ID, g.At(r, c+1).ID, r)
			}
			if r+1 < g.N && !edgesLink(cur, g.At(r+1, c), tile.Bottom) {
				return fmt.Errorf("%w: tiles %d and %d do not share an edge at column %d", ErrNoValidLayout, cur.ID, g.At(r+1, c).ID, c)
			}
		}
	}
	return nil
}

func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.IDs() {
		for c, id := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", id)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
