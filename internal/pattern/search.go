package pattern

import (
	"fmt"
	"image"
	"strings"

	"github.com/danmuck/mosaic/internal/bitmap"
	"github.com/danmuck/mosaic/internal/tile"
)

// Result describes the orientation in which the pattern was found.
type Result struct {
	Transform tile.Transform
	// Image is the searched bitmap in Transform.
	Image *bitmap.Bitmap
	// Matches holds the top-left corner of every match in Image.
	Matches []image.Point
	// Covered counts distinct pixels under a match.
	Covered int
	// Unmatched counts on pixels of Image not under any match.
	Unmatched int

	marked []bool
}

// Search tries every orientation of b and stops at the first one containing
// at least one match of p. Overlapping matches are all counted.
func Search(b *bitmap.Bitmap, p *Pattern) (*Result, error) {
	for _, t := range tile.Transforms() {
		img := b.Transform(t)
		matches := scan(img, p)
		if len(matches) == 0 {
			continue
		}

		res := &Result{
			Transform: t,
			Image:     img,
			Matches:   matches,
			marked:    make([]bool, img.Side()*img.Side()),
		}
		for _, m := range matches {
			for _, c := range p.cells {
				i := (m.Y+c.Y)*img.Side() + m.X + c.X
				if !res.marked[i] {
					res.marked[i] = true
					res.Covered++
				}
			}
		}
		res.Unmatched = img.Count() - res.Covered
		return res, nil
	}
	return nil, fmt.Errorf(
		"%w: %dx%d mask absent from all %d orientations of a %d pixel image",
		ErrNoPatternFound, p.width, p.height, tile.TransformCount, b.Side(),
	)
}

// CountUnmatched returns the on pixels left uncovered in the first
// orientation that contains p.
func CountUnmatched(b *bitmap.Bitmap, p *Pattern) (int, error) {
	res, err := Search(b, p)
	if err != nil {
		return 0, err
	}
	return res.Unmatched, nil
}

func scan(img *bitmap.Bitmap, p *Pattern) []image.Point {
	var out []image.Point
	for y := 0; y+p.height <= img.Side(); y++ {
		for x := 0; x+p.width <= img.Side(); x++ {
			if p.MatchesAt(img, x, y) {
				out = append(out, image.Pt(x, y))
			}
		}
	}
	return out
}

// Marked reports whether (x, y) of Image lies under a match.
func (r *Result) Marked(x, y int) bool {
	return r.marked[y*r.Image.Side()+x]
}

// Render draws Image with matched pixels shown as mark.
func (r *Result) Render(on, off, mark rune) string {
	rows := r.Image.RowsFunc(func(x, y int) rune {
		switch {
		case r.Marked(x, y):
			return mark
		case r.Image.At(x, y):
			return on
		default:
			return off
		}
	})
	return strings.Join(rows, "\n")
}
