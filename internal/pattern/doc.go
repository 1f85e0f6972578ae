// Package pattern finds a fixed mask inside a stitched image.
//
// Ownership boundary:
// - mask parsing
//
// - multi-orientation search
//
// - roughness (unmatched on pixels)
//
// Orientations are tried in transform order and the first one with at least
// one match is taken as the true orientation of the image.
package pattern
