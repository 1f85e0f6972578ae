package layout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/danmuck/mosaic/internal/tile"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is how many states are expanded between context checks.
const ctxCheckInterval = 1024

type Options struct {
	// Workers fans the initial placements out across goroutines. Values
	// below 2 search on the calling goroutine.
	Workers int
}

// placement is one persistent list cell. Children share their parent's
// prefix, so a state is a pointer to its newest cell.
type placement struct {
	prev      *placement
	tile      int
	transform tile.Transform
	depth     int
}

// pool marks arena indices already placed.
type pool []uint64

func newPool(n int) pool {
	return make(pool, (n+63)/64)
}

func (p pool) used(i int) bool {
	return p[i/64]&(1<<(uint(i)%64)) != 0
}

func (p pool) with(i int) pool {
	out := make(pool, len(p))
	copy(out, p)
	out[i/64] |= 1 << (uint(i) % 64)
	return out
}

type state struct {
	last *placement
	pool pool
}

// Assemble places every tile into an N x N grid where all touching edges
// match. Candidates are tried ascending by id, then by orientation, and the
// first complete layout wins. Parallel searches return the same layout.
// Tiles whose edges match by coincidence can make the search exponential;
// callers serving untrusted input should pass a ctx with a deadline.
func Assemble(ctx context.Context, tiles []tile.Tile, opts Options) (*Grid, error) {
	n, err := gridSide(tiles)
	if err != nil {
		return nil, err
	}

	arena := make([]tile.Tile, len(tiles))
	copy(arena, tiles)
	sort.SliceStable(arena, func(i, j int) bool {
		return arena[i].ID < arena[j].ID
	})

	var grid *Grid
	if opts.Workers > 1 {
		grid, err = assembleParallel(ctx, arena, n, opts.Workers)
	} else {
		grid, err = assembleSequential(ctx, arena, n)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("tiles", len(arena)).
		Int("grid_side", n).
		Int("branch", grid.Stats.Branch).
		Int("states", grid.Stats.States).
		Int("dead_ends", grid.Stats.DeadEnds).
		Msg("layout assembled")
	return grid, nil
}

func gridSide(tiles []tile.Tile) (int, error) {
	if len(tiles) == 0 {
		return 0, fmt.Errorf("%w: no tiles", ErrNoValidLayout)
	}
	n := 0
	for (n+1)*(n+1) <= len(tiles) {
		n++
	}
	if n*n != len(tiles) {
		return 0, fmt.Errorf("%w: %d tiles do not form a square", ErrNoValidLayout, len(tiles))
	}
	side := tiles[0].Side()
	for _, t := range tiles[1:] {
		if t.Side() != side {
			return 0, fmt.Errorf(
				"%w: tile %d side %d, tile %d side %d",
				tile.ErrInconsistentTileSize, t.ID, t.Side(), tiles[0].ID, side,
			)
		}
	}
	return n, nil
}

func branchCount(arena []tile.Tile) int {
	return len(arena) * tile.TransformCount
}

func assembleSequential(ctx context.Context, arena []tile.Tile, n int) (*Grid, error) {
	var stats Stats
	for b := 0; b < branchCount(arena); b++ {
		s := newSearcher(arena, n, nil)
		last, ok, err := s.run(ctx, s.root(b))
		stats.States += s.stats.States
		stats.DeadEnds += s.stats.DeadEnds
		if err != nil {
			return nil, err
		}
		if ok {
			stats.Branch = b
			return s.grid(last, stats), nil
		}
	}
	return nil, fmt.Errorf("%w: %d tiles exhausted %d initial placements", ErrNoValidLayout, len(arena), branchCount(arena))
}

func assembleParallel(ctx context.Context, arena []tile.Tile, n, workers int) (*Grid, error) {
	branches := branchCount(arena)
	var best atomic.Int64
	best.Store(int64(branches))

	var (
		mu      sync.Mutex
		stats   Stats
		results = make([]*placement, branches)
	)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for b := 0; b < branches; b++ {
			if int64(b) > best.Load() {
				return nil
			}
			select {
			case jobs <- b:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for b := range jobs {
				if int64(b) > best.Load() {
					continue
				}
				s := newSearcher(arena, n, func() bool { return int64(b) > best.Load() })
				last, ok, err := s.run(gctx, s.root(b))

				mu.Lock()
				stats.States += s.stats.States
				stats.DeadEnds += s.stats.DeadEnds
				mu.Unlock()

				if err != nil {
					return err
				}
				if ok {
					results[b] = last
					lowerBest(&best, int64(b))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	winner := int(best.Load())
	if winner == branches {
		return nil, fmt.Errorf("%w: %d tiles exhausted %d initial placements", ErrNoValidLayout, len(arena), branches)
	}
	stats.Branch = winner
	return newSearcher(arena, n, nil).grid(results[winner], stats), nil
}

func lowerBest(best *atomic.Int64, b int64) {
	for {
		cur := best.Load()
		if b >= cur || best.CompareAndSwap(cur, b) {
			return
		}
	}
}

type searcher struct {
	arena []tile.Tile
	n     int
	total int
	stats Stats
	// abandon reports that a lower branch already won.
	abandon func() bool
}

func newSearcher(arena []tile.Tile, n int, abandon func() bool) *searcher {
	return &searcher{
		arena:   arena,
		n:       n,
		total:   n * n,
		abandon: abandon,
	}
}

// root is initial placement b: arena tile b/8 in orientation b%8.
func (s *searcher) root(b int) state {
	idx := b / tile.TransformCount
	return state{
		last: &placement{
			tile:      idx,
			transform: tile.Transform(b % tile.TransformCount),
			depth:     1,
		},
		pool: newPool(len(s.arena)).with(idx),
	}
}

// run explores one initial placement depth first on an explicit stack.
// Children are pushed in reverse so they pop in candidate order.
func (s *searcher) run(ctx context.Context, root state) (*placement, bool, error) {
	stack := []state{root}
	for len(stack) > 0 {
		if s.stats.States%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}
			if s.abandon != nil && s.abandon() {
				return nil, false, nil
			}
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.stats.States++

		if cur.last.depth == s.total {
			return cur.last, true, nil
		}

		children := s.expand(cur)
		if len(children) == 0 {
			s.stats.DeadEnds++
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil, false, nil
}

// expand returns every state reachable by placing one more tile at position
// k = depth. Columns past the first link to the left neighbour, the first
// column links to the tile above, and interior cells must satisfy both.
func (s *searcher) expand(cur state) []state {
	k := cur.last.depth
	var left, top *tile.Tile
	if k%s.n != 0 {
		t := s.cell(cur.last)
		left = &t
	}
	if k >= s.n {
		t := s.cell(ancestor(cur.last, s.n-1))
		top = &t
	}

	var children []state
	for i, cand := range s.arena {
		if cur.pool.used(i) {
			continue
		}
		o, ok := link(cand, left, top)
		if !ok {
			continue
		}
		children = append(children, state{
			last: &placement{
				prev:      cur.last,
				tile:      i,
				transform: o.Transform(),
				depth:     k + 1,
			},
			pool: cur.pool.with(i),
		})
	}
	return children
}

func link(cand tile.Tile, left, top *tile.Tile) (tile.Tile, bool) {
	switch {
	case top == nil:
		return FindLinkingOrientation(*left, cand, tile.Right)
	case left == nil:
		return FindLinkingOrientation(*top, cand, tile.Bottom)
	}
	for _, o := range cand.Orientations() {
		if edgesLink(*left, o, tile.Right) && edgesLink(*top, o, tile.Bottom) {
			return o, true
		}
	}
	return tile.Tile{}, false
}

func ancestor(p *placement, steps int) *placement {
	for i := 0; i < steps; i++ {
		p = p.prev
	}
	return p
}

func (s *searcher) cell(p *placement) tile.Tile {
	return s.arena[p.tile].WithTransform(p.transform)
}

func (s *searcher) grid(last *placement, stats Stats) *Grid {
	cells := make([]tile.Tile, last.depth)
	for p := last; p != nil; p = p.prev {
		cells[p.depth-1] = s.cell(p)
	}
	return &Grid{N: s.n, Cells: cells, Stats: stats}
}
