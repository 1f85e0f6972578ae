// Package fixture holds the canonical nine tile mosaic used across package tests.
package fixture

// Tiles is a 3x3 mosaic of 10x10 tiles.
const Tiles = `Tile 2311:
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

Tile 1951:
#.##...##.
#.####...#
.....#..##
#...######
.##.#....#
.###.#####
###.##.##.
.###....#.
..#.#..#.#
#...##.#..

Tile 1171:
####...##.
#..##.#..#
##.#..#.#.
.###.####.
..###.####
.##....##.
.#...####.
#.##.####.
####..#...
.....##...

Tile 1427:
###.##.#..
.#..#.##..
.#.##.#..#
#.#.#.##.#
....#...##
...##..##.
...#.#####
.#.####.#.
..#..###.#
..##.#..#.

Tile 1489:
##.#.#....
..##...#..
.##..##...
..#...#...
#####...#.
#..#.#.#.#
...#.#.#..
##.#...##.
..##.##.##
###.##.#..

Tile 2473:
#....####.
#..#.##...
#.##..#...
######.#.#
.#...#.#.#
.#########
.###.#..#.
########.#
##...##.#.
..###.#.#.

Tile 2971:
..#.#....#
#...###...
#.#.###...
##.##..#..
.#####..##
.#..####.#
#..#.#..#.
..####.###
..#.#.###.
...#.#.#.#

Tile 2729:
...#.#.#.#
####.#....
..#.#.....
....#..#.#
.##..##.#.
.#.####...
####.#.#..
##.####...
##..#.##..
#.##...##.

Tile 3079:
#.#.#####.
.#..######
..#.......
######....
####.#..#.
.#...#.##.
#.#####.##
..#.###...
..#.......
..#.###...
`

// Image is the stitched interior of Tiles in one of its eight orientations.
const Image = `#.##.##...#.##....###..#
##.###...##..#.....#...#
##..#########.#..##....#
....#..##...#.#..#####.#
.##..#..########.##..#.#
###.#######.#..#..#.##..
.#####..#######.###.###.
.######.#...##.#...###.#
...#..##...####..#.###.#
#...###.#.#.##.#...##.#.
.##....####..###...#...#
.#..##.#.....###.##.##..
...#....#####.#.##.#....
#..#####.#..###...##.#..
####...#..#....#..#...##
.#.#..#.##....#.#.####.#
...#.###...#.....##.###.
..#.#.##..#..#.#..#.##.#
##..#..#...##.##..#.#...
##.####.#..####.###.##..
#####.##.##.#.###.##.#.#
..##.##.#...###.#...#.#.
.#.#..####.#.#..#..#####
..###...#..#####...####.
`

const (
	// CornerProduct is the product of the four corner tile ids of Tiles.
	CornerProduct int64 = 20899048083289
	// Monsters is the number of sea monsters found in the stitched image.
	Monsters = 2
	// Roughness is the count of on pixels not covered by a sea monster.
	Roughness = 273
	// GridSide is the number of tiles per row.
	GridSide = 3
	// TileSide is the pixel side of each tile.
	TileSide = 10
	// ImageSide is GridSide*(TileSide-2).
	ImageSide = 24
	// ImageOn is the number of on pixels in Image.
	ImageOn = 303
)

// CornerIDs lists the ids that must occupy the grid corners, in ascending order.
var CornerIDs = []int{1171, 1951, 2971, 3079}
