package pattern

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/danmuck/mosaic/internal/bitmap"
)

var (
	ErrMalformedPattern = errors.New("pattern: malformed pattern")
	ErrNoPatternFound   = errors.New("pattern: no pattern found")
)

// DefaultMarker marks a must-be-on cell. Every other rune is don't-care.
const DefaultMarker = '#'

// SeaMonsterText is the canonical mask searched for in assembled images.
const SeaMonsterText = "" +
	"                  # \n" +
	"#    ##    ##    ###\n" +
	" #  #  #  #  #  #   "

// Pattern is a rectangular mask reduced to its must-be-on offsets.
type Pattern struct {
	width  int
	height int
	cells  []image.Point
}

// Parse reads a mask. Leading spaces are significant; whitespace-only lines
// before the first and after the last row are dropped.
func Parse(text string, marker rune) (*Pattern, error) {
	if marker == 0 {
		marker = DefaultMarker
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedPattern)
	}

	p := &Pattern{height: len(lines)}
	for y, line := range lines {
		if n := utf8.RuneCountInString(line); n > p.width {
			p.width = n
		}
		x := 0
		for _, r := range line {
			if r == marker {
				p.cells = append(p.cells, image.Pt(x, y))
			}
			x++
		}
	}
	if len(p.cells) == 0 {
		return nil, fmt.Errorf("%w: no %q cells", ErrMalformedPattern, marker)
	}
	return p, nil
}

// SeaMonster returns the canonical 3x20 mask with 15 must-be-on cells.
func SeaMonster() *Pattern {
	p, err := Parse(SeaMonsterText, DefaultMarker)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) Width() int  { return p.width }
func (p *Pattern) Height() int { return p.height }

// Cells returns a copy of the must-be-on offsets.
func (p *Pattern) Cells() []image.Point {
	out := make([]image.Point, len(p.cells))
	copy(out, p.cells)
	return out
}

// MatchesAt reports whether every must-be-on cell lands on an on pixel when
// the mask's top-left corner sits at (x, y).
func (p *Pattern) MatchesAt(b *bitmap.Bitmap, x, y int) bool {
	if x < 0 || y < 0 || x+p.width > b.Side() || y+p.height > b.Side() {
		return false
	}
	for _, c := range p.cells {
		if !b.At(x+c.X, y+c.Y) {
			return false
		}
	}
	return true
}

func (p *Pattern) String() string {
	rows := make([][]rune, p.height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(" ", p.width))
	}
	for _, c := range p.cells {
		rows[c.Y][c.X] = DefaultMarker
	}
	lines := make([]string, p.height)
	for y, row := range rows {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}
