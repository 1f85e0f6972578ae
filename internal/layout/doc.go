// Package layout assembles tiles into an edge-consistent square grid.
//
// Ownership boundary:
// - edge matching between oriented tiles
//
// - backtracking placement search
//
// - grid geometry and corner identity
//
// The search never mutates shared state. Each state is an immutable
// placement list plus its own pool bitset, so backtracking is discarding a
// state.
package layout
