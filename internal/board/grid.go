package board

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Grid is a rows x cols board. Grid values are never modified in place:
// every operation in this package returns a fresh Grid, so a Grid kept by a
// caller stays a valid snapshot.
type Grid struct {
	rows, cols int
	tiles      []Tile
}

// New returns a grid of hidden, mine-free tiles. rows and cols must be
// positive.
func New(rows, cols int) Grid {
	tiles := make([]Tile, rows*cols)
	for r := range rows {
		for c := range cols {
			tiles[r*cols+c].Position = Position{r, c}
		}
	}
	return Grid{rows: rows, cols: cols, tiles: tiles}
}

func (g Grid) Rows() int { return g.rows }

func (g Grid) Cols() int { return g.cols }

func (g Grid) Size() int { return len(g.tiles) }

func (g Grid) InBounds(p Position) bool {
	return 0 <= p.Row && p.Row < g.rows && 0 <= p.Col && p.Col < g.cols
}

// Tile returns the tile at p. It panics if p is out of bounds.
func (g Grid) Tile(p Position) Tile {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("board: position %s out of %dx%d grid", p, g.rows, g.cols))
	}
	return g.tiles[g.index(p)]
}

// Tiles yields every tile in row-major order.
func (g Grid) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, t := range g.tiles {
			if !yield(t) {
				return
			}
		}
	}
}

func (g Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

func (g Grid) clone() Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return Grid{rows: g.rows, cols: g.cols, tiles: tiles}
}

var offsets = [8]Position{
	{-1, -1}, {-1, 0}, {-1, +1},
	{0, -1}, {0, +1},
	{+1, -1}, {+1, 0}, {+1, +1},
}

// neighbors returns in-bounds neighbours of p in a fixed order.
func (g Grid) neighbors(p Position) []Position {
	ns := make([]Position, 0, len(offsets))
	for _, d := range offsets {
		n := Position{p.Row + d.Row, p.Col + d.Col}
		if g.InBounds(n) {
			ns = append(ns, n)
		}
	}
	return ns
}

func (g Grid) countNeighbors(p Position, match func(Tile) bool) int {
	n := 0
	for _, q := range g.neighbors(p) {
		if match(g.tiles[g.index(q)]) {
			n++
		}
	}
	return n
}

// FlaggedCount is the number of tiles currently carrying a flag.
func FlaggedCount(g Grid) int {
	n := 0
	for _, t := range g.tiles {
		if t.Status == Flagged {
			n++
		}
	}
	return n
}

func MineCount(g Grid) int {
	n := 0
	for _, t := range g.tiles {
		if t.Mine {
			n++
		}
	}
	return n
}

// Grid implements [fmt.Stringer]
//
//	.  hidden
//	F  flagged
//	X  incorrectly flagged
//	*  revealed mine
//	0-8 revealed number
func (g Grid) String() string {
	var b strings.Builder
	for r := range g.rows {
		for c := range g.cols {
			if c > 0 {
				b.WriteByte(' ')
			}
			t := g.tiles[r*g.cols+c]
			switch t.Status {
			case Hidden:
				b.WriteByte('.')
			case Flagged:
				b.WriteByte('F')
			case FlaggedIncorrect:
				b.WriteByte('X')
			case RevealedMine:
				b.WriteByte('*')
			case RevealedNumber:
				b.WriteString(strconv.Itoa(t.AdjacentMines))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type gridGob struct {
	Rows, Cols int
	Tiles      []Tile
}

// Grid implements [gob.GobEncoder]
func (g Grid) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(gridGob{g.rows, g.cols, g.tiles})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Grid) GobDecode(data []byte) error {
	var v gridGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return err
	}
	if len(v.Tiles) != v.Rows*v.Cols {
		return fmt.Errorf("board: %d tiles for a %dx%d grid", len(v.Tiles), v.Rows, v.Cols)
	}
	g.rows, g.cols, g.tiles = v.Rows, v.Cols, v.Tiles
	return nil
}
