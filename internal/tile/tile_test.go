package tile

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/mosaic/internal/testutil/fixture"
	"github.com/danmuck/mosaic/internal/testutil/testlog"
)

const block2311 = `
	Tile 2311:
	..##.#..#.
	##..#.....
	#...##..#.
	####.#...#
	##.##.###.
	##...#.###
	.#.#.#..##
	..#....#..
	###...#.#.
	..###..###
`

func mustParse(t *testing.T, block string) Tile {
	t.Helper()
	tl, err := Parse(block, DefaultParseOptions())
	if err != nil {
		t.Fatalf("parse tile: %v", err)
	}
	return tl
}

// rotateRows is an independent clockwise rotation on rendered rows.
func rotateRows(rows []string) []string {
	n := len(rows)
	out := make([]string, n)
	for r := 0; r < n; r++ {
		var b strings.Builder
		for c := 0; c < n; c++ {
			b.WriteByte(rows[n-1-c][r])
		}
		out[r] = b.String()
	}
	return out
}

func mirrorRows(rows []string) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[len(rows)-1-i] = rows[i]
	}
	return out
}

func edgesOf(t Tile) [4]string {
	var out [4]string
	for i, s := range Sides {
		out[i] = t.Edge(s).String()
	}
	return out
}

func TestParseCanonicalTile(t *testing.T) {
	testlog.Start(t)
	tl := mustParse(t, block2311)
	if tl.ID != 2311 || tl.Side() != 10 {
		t.Fatalf("unexpected tile id=%d side=%d", tl.ID, tl.Side())
	}
	want := map[Side]string{
		Top:    "..##.#..#.",
		Right:  "...#.##..#",
		Bottom: "..###..###",
		Left:   ".#####..#.",
	}
	for side, edge := range want {
		if got := tl.Edge(side).String(); got != edge {
			t.Fatalf("%s edge = %s, want %s", side, got, edge)
		}
	}
	testlog.Logf("tile/parse: id=%d edges=%v", tl.ID, edgesOf(tl))
}

func TestParseHeaderForms(t *testing.T) {
	testlog.Start(t)
	rows := "\n#..\n.#.\n..#\n"
	for _, header := range []string{"Tile 17:", "17:", "17", "  Tile 17  "} {
		tl, err := Parse(header+rows, DefaultParseOptions())
		if err != nil {
			t.Fatalf("header %q: %v", header, err)
		}
		if tl.ID != 17 {
			t.Fatalf("header %q parsed id %d", header, tl.ID)
		}
	}
}

func TestParseAlternateOnRune(t *testing.T) {
	testlog.Start(t)
	tl, err := Parse("Tile 5:\n1000\n0100\n0010\n0001", ParseOptions{On: '1'})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !tl.At(2, 2) || tl.At(0, 3) {
		t.Fatalf("unexpected pixels: %s", tl)
	}
}

func TestParseRejectsMalformedBlocks(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"empty":      "  \n\n",
		"bad header": "Tile abc:\n#..\n.#.\n..#",
		"no rows":    "Tile 3:",
		"ragged":     "Tile 3:\n#..\n.#\n..#",
		"not square": "Tile 3:\n#...\n.#..\n..#.",
		"too small":  "Tile 3:\n#.\n.#",
	}
	for name, block := range cases {
		if _, err := Parse(block, DefaultParseOptions()); !errors.Is(err, ErrMalformedTile) {
			t.Fatalf("%s: expected ErrMalformedTile, got %v", name, err)
		}
	}
}

func TestParseSetCanonicalInstance(t *testing.T) {
	testlog.Start(t)
	tiles, err := ParseSet(fixture.Tiles, DefaultParseOptions())
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	if len(tiles) != fixture.GridSide*fixture.GridSide {
		t.Fatalf("expected 9 tiles, got %d", len(tiles))
	}
	for _, tl := range tiles {
		if tl.Side() != fixture.TileSide {
			t.Fatalf("tile %d side %d", tl.ID, tl.Side())
		}
	}
}

func TestParseSetRejectsDuplicatesAndMixedSides(t *testing.T) {
	testlog.Start(t)
	dup := "Tile 1:\n#..\n.#.\n..#\n\nTile 1:\n...\n...\n..."
	if _, err := ParseSet(dup, DefaultParseOptions()); !errors.Is(err, ErrMalformedTile) {
		t.Fatalf("expected duplicate id rejection, got %v", err)
	}

	mixed := "Tile 1:\n#..\n.#.\n..#\n\nTile 2:\n....\n....\n....\n...."
	if _, err := ParseSet(mixed, DefaultParseOptions()); !errors.Is(err, ErrInconsistentTileSize) {
		t.Fatalf("expected ErrInconsistentTileSize, got %v", err)
	}

	if _, err := ParseSet("\n\n", DefaultParseOptions()); !errors.Is(err, ErrMalformedTile) {
		t.Fatalf("expected empty input rejection, got %v", err)
	}
}

func TestRotateMovesEdgesClockwise(t *testing.T) {
	testlog.Start(t)
	base := mustParse(t, block2311)
	rot := base.Rotate()

	// Only the edges that land on top and bottom change reading direction.
	if got, want := rot.Edge(Right).String(), base.Edge(Top).String(); got != want {
		t.Fatalf("right after rotate = %s, want old top %s", got, want)
	}
	if got, want := rot.Edge(Top).String(), base.Edge(Left).Reversed().String(); got != want {
		t.Fatalf("top after rotate = %s, want reversed old left %s", got, want)
	}
	if got, want := rot.Edge(Bottom).String(), base.Edge(Right).Reversed().String(); got != want {
		t.Fatalf("bottom after rotate = %s, want reversed old right %s", got, want)
	}
	if got, want := rot.Edge(Left).String(), base.Edge(Bottom).String(); got != want {
		t.Fatalf("left after rotate = %s, want old bottom %s", got, want)
	}
}

func TestRotationRoundTrip(t *testing.T) {
	testlog.Start(t)
	base := mustParse(t, block2311)
	for _, o := range base.Orientations() {
		turned := o.Rotate().Rotate().Rotate().Rotate()
		if turned.Transform() != o.Transform() {
			t.Fatalf("four rotations of %s landed on %s", o.Transform(), turned.Transform())
		}
		if edgesOf(turned) != edgesOf(o) {
			t.Fatalf("four rotations of %s changed edges", o.Transform())
		}
	}
}

func TestReflectionInvolution(t *testing.T) {
	testlog.Start(t)
	base := mustParse(t, block2311)
	for _, o := range base.Orientations() {
		if edgesOf(o.FlipHorizontal().FlipHorizontal()) != edgesOf(o) {
			t.Fatalf("double horizontal flip of %s changed edges", o.Transform())
		}
		if edgesOf(o.FlipVertical().FlipVertical()) != edgesOf(o) {
			t.Fatalf("double vertical flip of %s changed edges", o.Transform())
		}
		flipped := o.FlipHorizontal()
		if edgesOf(flipped.Rotate().Rotate().Rotate().Rotate()) != edgesOf(flipped) {
			t.Fatalf("rotating flipped %s four times changed edges", o.Transform())
		}
	}
}

func TestFlipsSwapOpposingEdges(t *testing.T) {
	testlog.Start(t)
	base := mustParse(t, block2311)

	h := base.FlipHorizontal()
	if h.Edge(Top).String() != "..###..###" || h.Edge(Bottom).String() != "..##.#..#." {
		t.Fatalf("horizontal flip must swap top and bottom, got %v", edgesOf(h))
	}
	if h.Edge(Left).String() != base.Edge(Left).Reversed().String() {
		t.Fatalf("horizontal flip must reverse the left edge")
	}

	v := base.FlipVertical()
	if v.Edge(Left).String() != base.Edge(Right).String() || v.Edge(Right).String() != base.Edge(Left).String() {
		t.Fatalf("vertical flip must swap left and right, got %v", edgesOf(v))
	}
	if v.Edge(Top).String() != base.Edge(Top).Reversed().String() {
		t.Fatalf("vertical flip must reverse the top edge")
	}
}

func TestOrientationsMatchMaterializedTransforms(t *testing.T) {
	testlog.Start(t)
	base := mustParse(t, block2311)
	rows := base.Rows('#', '.')

	want := make([][]string, 0, TransformCount)
	cur := rows
	for i := 0; i < 4; i++ {
		want = append(want, cur)
		cur = rotateRows(cur)
	}
	cur = mirrorRows(rows)
	for i := 0; i < 4; i++ {
		want = append(want, cur)
		cur = rotateRows(cur)
	}

	seen := make(map[string]bool)
	for i, o := range base.Orientations() {
		got := strings.Join(o.Rows('#', '.'), "\n")
		if exp := strings.Join(want[i], "\n"); got != exp {
			t.Fatalf("orientation %d (%s) mismatch:\n%s\nwant\n%s", i, o.Transform(), got, exp)
		}
		if o.ID != base.ID {
			t.Fatalf("orientation %d lost tile id", i)
		}
		seen[got] = true
	}
	if len(seen) != TransformCount {
		t.Fatalf("asymmetric tile should have 8 distinct orientations, got %d", len(seen))
	}
}

func TestPixelsAndStringRoundTrip(t *testing.T) {
	testlog.Start(t)
	base := mustParse(t, block2311)
	o := base.Rotate().FlipVertical()

	again := mustParse(t, o.String())
	if again.ID != base.ID {
		t.Fatalf("round trip id %d", again.ID)
	}
	a, b := o.Pixels(), again.Pixels()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("round trip pixel %d differs", i)
		}
	}
	if base.Pixels()[2] != true || base.Pixels()[0] != false {
		t.Fatalf("unexpected base pixels")
	}
}

func TestTransformAlgebra(t *testing.T) {
	testlog.Start(t)
	for _, tr := range Transforms() {
		if tr.Rotate().Rotate().Rotate().Rotate() != tr {
			t.Fatalf("%s: rotate order is not 4", tr)
		}
		if tr.FlipHorizontal().FlipHorizontal() != tr {
			t.Fatalf("%s: horizontal flip is not an involution", tr)
		}
		if tr.FlipVertical() != tr.FlipHorizontal().Rotate().Rotate() {
			t.Fatalf("%s: vertical flip must equal horizontal flip plus half turn", tr)
		}
	}
	if NewTransform(-1, true) != NewTransform(3, true) {
		t.Fatalf("negative turns must wrap")
	}
	if Transform(6).String() != "flip+r180" || Identity.String() != "r0" {
		t.Fatalf("unexpected transform names %s %s", Transform(6), Identity)
	}
}
