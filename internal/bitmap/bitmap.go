// Package bitmap holds the stitched mosaic image and its orientations.
package bitmap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/danmuck/mosaic/internal/tile"
)

var (
	ErrMalformedBitmap = errors.New("bitmap: malformed bitmap")
	ErrInvalidGrid     = errors.New("bitmap: invalid grid")
)

// Bitmap is a square binary image. Transforms return new bitmaps.
type Bitmap struct {
	side  int
	cells []bool // row-major
}

func New(side int) *Bitmap {
	return &Bitmap{side: side, cells: make([]bool, side*side)}
}

// Parse reads a square image with one rune per pixel. Blank lines and
// surrounding whitespace are ignored.
func Parse(text string, on rune) (*Bitmap, error) {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	side := len(rows)
	if side == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedBitmap)
	}
	b := New(side)
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != side {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBitmap, y, n, side)
		}
		x := 0
		for _, r := range row {
			b.set(x, y, r == on)
			x++
		}
	}
	return b, nil
}

func (b *Bitmap) Side() int {
	return b.side
}

// At reports the pixel in column x of row y.
func (b *Bitmap) At(x, y int) bool {
	return b.cells[y*b.side+x]
}

func (b *Bitmap) set(x, y int, v bool) {
	b.cells[y*b.side+x] = v
}

// Count returns the number of on pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.cells {
		if v {
			n++
		}
	}
	return n
}

// Transform returns a copy of the image in orientation t, using the same
// dihedral convention as tiles.
func (b *Bitmap) Transform(t tile.Transform) *Bitmap {
	out := New(b.side)
	for y := 0; y < b.side; y++ {
		for x := 0; x < b.side; x++ {
			sy, sx := t.Source(y, x, b.side)
			out.set(x, y, b.At(sx, sy))
		}
	}
	return out
}

func (b *Bitmap) Rotate() *Bitmap {
	return b.Transform(tile.Identity.Rotate())
}

func (b *Bitmap) FlipHorizontal() *Bitmap {
	return b.Transform(tile.Identity.FlipHorizontal())
}

func (b *Bitmap) Orientations() [tile.TransformCount]*Bitmap {
	var out [tile.TransformCount]*Bitmap
	for i, t := range tile.Transforms() {
		out[i] = b.Transform(t)
	}
	return out
}

func (b *Bitmap) Equal(other *Bitmap) bool {
	if other == nil || b.side != other.side {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b *Bitmap) Rows(on, off rune) []string {
	return b.RowsFunc(func(x, y int) rune {
		if b.At(x, y) {
			return on
		}
		return off
	})
}

// RowsFunc renders each pixel with the rune chosen by cell.
func (b *Bitmap) RowsFunc(cell func(x, y int) rune) []string {
	rows := make([]string, b.side)
	var sb strings.Builder
	for y := 0; y < b.side; y++ {
		sb.Reset()
		for x := 0; x < b.side; x++ {
			sb.WriteRune(cell(x, y))
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b *Bitmap) String() string {
	return strings.Join(b.Rows('#', '.'), "\n")
}
