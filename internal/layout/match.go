package layout

import "github.com/danmuck/mosaic/internal/tile"

// FindLinkingOrientation returns the first orientation of candidate whose edge
// on the side opposite side equals the edge of fixed on side. Tile ids are not
// consulted.
func FindLinkingOrientation(fixed, candidate tile.Tile, side tile.Side) (tile.Tile, bool) {
	for _, o := range candidate.Orientations() {
		if edgesLink(fixed, o, side) {
			return o, true
		}
	}
	return tile.Tile{}, false
}

// edgesLink reports whether b placed on side of a shares the touching edge.
func edgesLink(a, b tile.Tile, side tile.Side) bool {
	if a.Side() != b.Side() {
		return false
	}
	opposite := side.Opposite()
	for i := 0; i < a.Side(); i++ {
		if a.EdgeAt(side, i) != b.EdgeAt(opposite, i) {
			return false
		}
	}
	return true
}
