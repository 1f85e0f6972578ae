package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultOn is the rune marking an on pixel in tile blocks.
const DefaultOn = '#'

type ParseOptions struct {
	// On marks an on pixel. Zero selects DefaultOn.
	On rune
}

func DefaultParseOptions() ParseOptions {
	return ParseOptions{On: DefaultOn}
}

func (o ParseOptions) on() rune {
	if o.On == 0 {
		return DefaultOn
	}
	return o.On
}

// Parse reads one tile block: a header naming the id followed by the pixel
// rows. Surrounding whitespace and blank lines are ignored.
func Parse(block string, opts ParseOptions) (Tile, error) {
	lines := significantLines(block)
	if len(lines) == 0 {
		return Tile{}, fmt.Errorf("%w: empty block", ErrMalformedTile)
	}
	return parseLines(lines, opts.on())
}

// ParseSet reads blank-line separated tile blocks. Ids must be unique and
// every tile must share one side length.
func ParseSet(text string, opts ParseOptions) ([]Tile, error) {
	blocks := splitBlocks(text)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no tile blocks in input", ErrMalformedTile)
	}

	tiles := make([]Tile, 0, len(blocks))
	seen := make(map[int]int, len(blocks))
	for i, block := range blocks {
		t, err := parseLines(block, opts.on())
		if err != nil {
			return nil, fmt.Errorf("tile block %d: %w", i, err)
		}
		if prev, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %d in blocks %d and %d", ErrMalformedTile, t.ID, prev, i)
		}
		if len(tiles) > 0 && t.Side() != tiles[0].Side() {
			return nil, fmt.Errorf(
				"%w: tile %d side %d, tile %d side %d",
				ErrInconsistentTileSize, t.ID, t.Side(), tiles[0].ID, tiles[0].Side(),
			)
		}
		seen[t.ID] = i
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func parseLines(lines []string, on rune) (Tile, error) {
	id, err := parseHeader(lines[0])
	if err != nil {
		return Tile{}, err
	}
	return New(id, lines[1:], on)
}

// parseHeader accepts "Tile 2311:", "2311:" and "2311".
func parseHeader(line string) (int, error) {
	raw := strings.TrimSpace(line)
	raw = strings.TrimSuffix(raw, ":")
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Tile"))
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: header %q has no integer id", ErrMalformedTile, line)
	}
	return id, nil
}

func significantLines(block string) []string {
	var out []string
	for _, line := range strings.Split(normalizeNewlines(block), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitBlocks(text string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
