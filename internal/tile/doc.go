// Package tile owns the square tile model.
//
// Ownership boundary:
// - tile block parsing
//
// - edge extraction
//
// - dihedral orientation transforms
//
// A Tile is a value. Orientations share the parsed pixel storage and differ
// only by Transform, so rotating or flipping never copies pixels.
package tile
