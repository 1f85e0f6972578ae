package tile

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinSide is the smallest tile that still has interior pixels once its
// border ring is removed.
const MinSide = 3

// Side names one border of a tile.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists the borders in clockwise order starting at Top.
var Sides = [4]Side{Top, Right, Bottom, Left}

func (s Side) Opposite() Side {
	return (s + 2) % 4
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Edge is the border sequence of one side. Top and bottom read left to right,
// left and right read top to bottom.
type Edge []bool

func (e Edge) Equal(other Edge) bool {
	if len(e) != len(other) {
		return false
	}
	for i := range e {
		if e[i] != other[i] {
			return false
		}
	}
	return true
}

// Reversed returns a new edge read in the opposite direction.
func (e Edge) Reversed() Edge {
	out := make(Edge, len(e))
	for i, v := range e {
		out[len(e)-1-i] = v
	}
	return out
}

func (e Edge) String() string {
	var b strings.Builder
	b.Grow(len(e))
	for _, v := range e {
		if v {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Tile is one square tile viewed in a specific orientation.
type Tile struct {
	ID int

	side      int
	pixels    []bool // row-major, never written after construction
	transform Transform
}

// New builds a tile from rows of equal length, one rune per pixel. The rune on
// marks an on pixel, every other rune is off.
func New(id int, rows []string, on rune) (Tile, error) {
	if len(rows) == 0 {
		return Tile{}, fmt.Errorf("%w: tile %d has no rows", ErrMalformedTile, id)
	}
	side := utf8.RuneCountInString(rows[0])
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != side {
			return Tile{}, fmt.Errorf("%w: tile %d row %d has %d cells, want %d", ErrMalformedTile, id, i, n, side)
		}
	}
	if len(rows) != side {
		return Tile{}, fmt.Errorf("%w: tile %d has %d rows of %d cells", ErrMalformedTile, id, len(rows), side)
	}
	if side < MinSide {
		return Tile{}, fmt.Errorf("%w: tile %d side %d below minimum %d", ErrMalformedTile, id, side, MinSide)
	}

	pixels := make([]bool, 0, side*side)
	for _, row := range rows {
		for _, r := range row {
			pixels = append(pixels, r == on)
		}
	}
	return Tile{ID: id, side: side, pixels: pixels}, nil
}

func (t Tile) Side() int {
	return t.side
}

func (t Tile) Transform() Transform {
	return t.transform
}

// WithTransform returns the same physical tile in orientation tr.
func (t Tile) WithTransform(tr Transform) Tile {
	t.transform = tr
	return t
}

// At reports the pixel at row, col of the oriented tile.
func (t Tile) At(row, col int) bool {
	r, c := t.transform.Source(row, col, t.side)
	return t.pixels[r*t.side+c]
}

// EdgeAt reports cell i of the border on side s without allocating.
func (t Tile) EdgeAt(s Side, i int) bool {
	last := t.side - 1
	switch s {
	case Top:
		return t.At(0, i)
	case Right:
		return t.At(i, last)
	case Bottom:
		return t.At(last, i)
	default:
		return t.At(i, 0)
	}
}

func (t Tile) Edge(s Side) Edge {
	out := make(Edge, t.side)
	for i := range out {
		out[i] = t.EdgeAt(s, i)
	}
	return out
}

// Rotate returns the tile turned 90 degrees clockwise. The old left and
// right edges become the top and bottom reversed; top and bottom move to
// right and left unchanged.
func (t Tile) Rotate() Tile {
	return t.WithTransform(t.transform.Rotate())
}

// FlipHorizontal mirrors the tile across its horizontal axis, swapping the
// top and bottom rows.
func (t Tile) FlipHorizontal() Tile {
	return t.WithTransform(t.transform.FlipHorizontal())
}

// FlipVertical mirrors the tile across its vertical axis, swapping the left
// and right columns.
func (t Tile) FlipVertical() Tile {
	return t.WithTransform(t.transform.FlipVertical())
}

// Orientations returns the identity, its three rotations, then the same four
// rotations of the mirrored tile. Symmetric tiles yield repeated images.
func (t Tile) Orientations() [TransformCount]Tile {
	var out [TransformCount]Tile
	for i, tr := range Transforms() {
		out[i] = t.WithTransform(tr)
	}
	return out
}

// Pixels materializes the oriented tile as a new row-major slice.
func (t Tile) Pixels() []bool {
	out := make([]bool, 0, t.side*t.side)
	for r := 0; r < t.side; r++ {
		for c := 0; c < t.side; c++ {
			out = append(out, t.At(r, c))
		}
	}
	return out
}

// Rows renders the oriented tile one string per row.
func (t Tile) Rows(on, off rune) []string {
	rows := make([]string, t.side)
	var b strings.Builder
	for r := 0; r < t.side; r++ {
		b.Reset()
		for c := 0; c < t.side; c++ {
			if t.At(r, c) {
				b.WriteRune(on)
			} else {
				b.WriteRune(off)
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// String renders the oriented tile in the block format Parse accepts.
func (t Tile) String() string {
	return fmt.Sprintf("Tile %d:\n%s", t.ID, strings.Join(t.Rows('#', '.'), "\n"))
}
