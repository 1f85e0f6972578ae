package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/danmuck/mosaic/internal/bitmap"
	"github.com/danmuck/mosaic/internal/layout"
	"github.com/danmuck/mosaic/internal/observability"
	"github.com/danmuck/mosaic/internal/pattern"
	"github.com/danmuck/mosaic/internal/tile"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Parse  tile.ParseOptions
	Layout layout.Options
	// Pattern is searched in the stitched image. Nil stops the run after
	// assembly and reports only the corner product.
	Pattern *pattern.Pattern
}

func DefaultOptions() Options {
	return Options{
		Parse:   tile.DefaultParseOptions(),
		Layout:  layout.Options{Workers: 1},
		Pattern: pattern.SeaMonster(),
	}
}

// Report carries both puzzle answers and the shape of the run.
type Report struct {
	Tiles         int     `json:"tiles"`
	GridSide      int     `json:"grid_side"`
	TileSide      int     `json:"tile_side"`
	ImageSide     int     `json:"image_side,omitempty"`
	Layout        [][]int `json:"layout"`
	CornerIDs     [4]int  `json:"corner_ids"`
	CornerProduct int64   `json:"corner_product"`

	Searched    bool   `json:"searched"`
	Orientation string `json:"orientation,omitempty"`
	Matches     int    `json:"matches"`
	Roughness   int    `json:"roughness"`

	SearchStates int           `json:"search_states"`
	DeadEnds     int           `json:"dead_ends"`
	Duration     time.Duration `json:"duration_ns"`

	// Rendered is the oriented image with matches drawn as 'O'.
	Rendered string `json:"-"`
}

// StageError names the pipeline stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SolveReader reads the whole tile input from r and solves it.
func SolveReader(ctx context.Context, r io.Reader, opts Options) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &StageError{Stage: observability.StageParse, Err: fmt.Errorf("read input: %w", err)}
	}
	return Solve(ctx, string(data), opts)
}

func Solve(ctx context.Context, input string, opts Options) (*Report, error) {
	start := time.Now()
	report, err := solve(ctx, input, opts)
	if err != nil {
		failed := ""
		var se *StageError
		if errors.As(err, &se) {
			failed = se.Stage
		}
		observability.RecordSolve(observability.OutcomeError, failed)
		log.Error().Err(err).Str("stage", failed).Dur("duration", time.Since(start)).Msg("solve failed")
		return nil, err
	}

	report.Duration = time.Since(start)
	observability.RecordSolve(observability.OutcomeOK, "")
	event := log.Info().
		Int("tiles", report.Tiles).
		Int("grid_side", report.GridSide).
		Int64("corner_product", report.CornerProduct).
		Int("search_states", report.SearchStates).
		Dur("duration", report.Duration)
	if report.Searched {
		event = event.Str("orientation", report.Orientation).Int("matches", report.Matches).Int("roughness", report.Roughness)
	}
	event.Msg("solve complete")
	return report, nil
}

func solve(ctx context.Context, input string, opts Options) (*Report, error) {
	var tiles []tile.Tile
	if err := stage(observability.StageParse, func() (err error) {
		tiles, err = tile.ParseSet(input, opts.Parse)
		return err
	}); err != nil {
		return nil, err
	}
	log.Debug().Int("tiles", len(tiles)).Int("tile_side", tiles[0].Side()).Msg("tiles parsed")

	var grid *layout.Grid
	if err := stage(observability.StageAssemble, func() (err error) {
		grid, err = layout.Assemble(ctx, tiles, opts.Layout)
		return err
	}); err != nil {
		return nil, err
	}
	observability.RecordSearchEffort(grid.Stats.States, grid.Stats.DeadEnds)

	report := &Report{
		Tiles:         len(tiles),
		GridSide:      grid.N,
		TileSide:      grid.TileSide(),
		Layout:        grid.IDs(),
		CornerIDs:     grid.CornerIDs(),
		CornerProduct: grid.CornerProduct(),
		SearchStates:  grid.Stats.States,
		DeadEnds:      grid.Stats.DeadEnds,
	}
	if opts.Pattern == nil {
		return report, nil
	}

	var img *bitmap.Bitmap
	if err := stage(observability.StageStitch, func() (err error) {
		img, err = bitmap.Stitch(grid)
		return err
	}); err != nil {
		return nil, err
	}
	report.ImageSide = img.Side()

	var res *pattern.Result
	if err := stage(observability.StageSearch, func() (err error) {
		res, err = pattern.Search(img, opts.Pattern)
		return err
	}); err != nil {
		return nil, err
	}
	report.Searched = true
	report.Orientation = res.Transform.String()
	report.Matches = len(res.Matches)
	report.Roughness = res.Unmatched
	report.Rendered = res.Render('#', '.', 'O')
	return report, nil
}

func stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	observability.RecordStage(name, time.Since(start))
	if err != nil {
		return &StageError{Stage: name, Err: err}
	}
	return nil
}
