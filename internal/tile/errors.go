package tile

import "errors"

var (
	ErrMalformedTile        = errors.New("tile: malformed tile")
	ErrInconsistentTileSize = errors.New("tile: inconsistent tile size")
)
