package bitmap

import (
	"fmt"

	"github.com/danmuck/mosaic/internal/layout"
	"github.com/danmuck/mosaic/internal/tile"
)

// Stitch drops the border ring of every placed tile and joins the interiors
// into one image of side N*(S-2).
func Stitch(grid *layout.Grid) (*Bitmap, error) {
	if grid == nil || grid.N <= 0 || len(grid.Cells) != grid.N*grid.N {
		return nil, fmt.Errorf("%w: grid shape does not cover a square", ErrInvalidGrid)
	}
	side := grid.TileSide()
	for _, t := range grid.Cells {
		if t.Side() != side {
			return nil, fmt.Errorf(
				"%w: tile %d side %d, tile %d side %d",
				tile.ErrInconsistentTileSize, t.ID, t.Side(), grid.Cells[0].ID, side,
			)
		}
	}

	inner := side - 2
	out := New(grid.N * inner)
	for i, t := range grid.Cells {
		ox := (i % grid.N) * inner
		oy := (i / grid.N) * inner
		for r := 0; r < inner; r++ {
			for c := 0; c < inner; c++ {
				out.set(ox+c, oy+r, t.At(r+1, c+1))
			}
		}
	}
	return out, nil
}
