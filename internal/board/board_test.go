package board

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layout builds a grid from rows of '.' (safe) and '*' (mine).
func layout(rows ...string) Grid {
	g := New(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, ch := range row {
			if ch == '*' {
				g.tiles[g.index(Position{r, c})].Mine = true
			}
		}
	}
	g.countMines()
	return g
}

func render(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

func TestNew(t *testing.T) {
	g := New(3, 4)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 12, g.Size())
	for tile := range g.Tiles() {
		assert.Equal(t, Hidden, tile.Status)
		assert.False(t, tile.Mine)
		assert.Zero(t, tile.AdjacentMines)
	}
	assert.Equal(t, Position{2, 3}, g.Tile(Position{2, 3}).Position)
}

func TestPlaceMines(t *testing.T) {
	tests := []struct {
		rows, cols, mines int
		exclude           Position
	}{
		{8, 8, 10, Position{0, 0}},
		{10, 10, 20, Position{5, 5}},
		{12, 16, 40, Position{11, 15}},
		{1, 2, 1, Position{0, 0}},
		{3, 3, 8, Position{1, 1}},
	}

	r := rand.New(rand.NewPCG(1, 2))
	for _, test := range tests {
		name := fmt.Sprintf("%dx%d(%d)", test.rows, test.cols, test.mines)
		t.Run(name, func(t *testing.T) {
			empty := New(test.rows, test.cols)
			g := PlaceMines(empty, test.mines, test.exclude, r)

			assert.Equal(t, test.mines, MineCount(g))
			assert.False(t, g.Tile(test.exclude).Mine, "excluded cell holds a mine")
			assert.Zero(t, MineCount(empty), "input grid was modified")

			for tile := range g.Tiles() {
				if tile.Mine {
					continue
				}
				want := 0
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						p := Position{tile.Row + dr, tile.Col + dc}
						if (dr != 0 || dc != 0) && g.InBounds(p) && g.Tile(p).Mine {
							want++
						}
					}
				}
				assert.Equal(t, want, tile.AdjacentMines, "tile %s", tile.Position)
			}
		})
	}
}

func TestPlaceMinesIsSeedDeterministic(t *testing.T) {
	a := PlaceMines(New(8, 8), 10, Position{}, rand.New(rand.NewPCG(7, 7)))
	b := PlaceMines(New(8, 8), 10, Position{}, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

func TestPlaceMinesRejectsFullGrid(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	assert.Panics(t, func() {
		PlaceMines(New(2, 2), 4, Position{0, 0}, r)
	})
}

func TestRevealNumber(t *testing.T) {
	g := layout(".*")

	g = Reveal(g, Position{0, 0})

	tile := g.Tile(Position{0, 0})
	assert.Equal(t, RevealedNumber, tile.Status)
	assert.Equal(t, 1, tile.AdjacentMines)
	assert.True(t, IsWin(g))
	assert.False(t, IsLoss(g))
}

func TestRevealCenterMine(t *testing.T) {
	// every tile borders the mine, so nothing spreads
	g := layout(
		"...",
		".*.",
		"...",
	)

	g = Reveal(g, Position{0, 0})
	assert.Equal(t, render(
		"1 . .",
		". . .",
		". . .",
	), g.String())
	assert.False(t, IsWin(g))

	for tile := range g.Tiles() {
		if !tile.Mine {
			g = Reveal(g, tile.Position)
		}
	}
	assert.True(t, IsWin(g))
	assert.Equal(t, render(
		"1 1 1",
		"1 . 1",
		"1 1 1",
	), g.String())
}

func TestRevealFloodFillWins(t *testing.T) {
	g := layout(
		"...",
		"...",
		"..*",
	)

	g = Reveal(g, Position{0, 0})

	assert.Equal(t, render(
		"0 0 0",
		"0 1 1",
		"0 1 .",
	), g.String())
	assert.True(t, IsWin(g))
}

func TestRevealStopsAtBorder(t *testing.T) {
	g := layout(
		"..*..",
		"..*..",
		"..*..",
	)

	g = Reveal(g, Position{0, 0})

	assert.Equal(t, render(
		"0 2 . . .",
		"0 3 . . .",
		"0 2 . . .",
	), g.String())
	assert.False(t, IsWin(g))
}

func TestRevealSkipsFlags(t *testing.T) {
	g := layout(
		"....",
		"...*",
	)
	g = Mark(g, Position{0, 1})

	g = Reveal(g, Position{1, 0})

	assert.Equal(t, render(
		"0 F 1 .",
		"0 0 1 .",
	), g.String())
}

func TestRevealMine(t *testing.T) {
	g := layout("*.")
	g = Reveal(g, Position{0, 0})
	assert.Equal(t, RevealedMine, g.Tile(Position{0, 0}).Status)
	assert.Equal(t, Hidden, g.Tile(Position{0, 1}).Status)
	assert.True(t, IsLoss(g))
	assert.False(t, IsWin(g))
}

func TestRevealNoOp(t *testing.T) {
	g := layout(".*", "..")
	g = Reveal(g, Position{0, 0})

	assert.Equal(t, g, Reveal(g, Position{0, 0}), "revealed tile")
	flagged := Mark(g, Position{0, 1})
	assert.Equal(t, flagged, Reveal(flagged, Position{0, 1}), "flagged tile")
	assert.Equal(t, g, Reveal(g, Position{5, 5}), "out of bounds")
}

func TestRevealKeepsSnapshot(t *testing.T) {
	before := layout("...", "..*")
	after := Reveal(before, Position{0, 0})

	assert.Equal(t, RevealedNumber, after.Tile(Position{0, 0}).Status)
	for tile := range before.Tiles() {
		assert.Equal(t, Hidden, tile.Status, "snapshot changed at %s", tile.Position)
	}
}

func TestMark(t *testing.T) {
	g := layout("..", ".*")
	p := Position{1, 1}

	once := Mark(g, p)
	assert.Equal(t, Flagged, once.Tile(p).Status)
	assert.Equal(t, 1, FlaggedCount(once))
	assert.Equal(t, Hidden, g.Tile(p).Status)

	twice := Mark(once, p)
	assert.Equal(t, g, twice)

	opened := Reveal(g, Position{0, 0})
	assert.Equal(t, opened, Mark(opened, Position{0, 0}))
}

func TestChord(t *testing.T) {
	base := layout(
		"*..",
		"...",
		"...",
	)
	base = Reveal(base, Position{1, 1})
	require.Equal(t, 1, base.Tile(Position{1, 1}).AdjacentMines)

	t.Run("no flags", func(t *testing.T) {
		next, ok := Chord(base, Position{1, 1})
		assert.False(t, ok)
		assert.Equal(t, base, next)
	})

	t.Run("hidden tile", func(t *testing.T) {
		next, ok := Chord(base, Position{2, 2})
		assert.False(t, ok)
		assert.Equal(t, base, next)
	})

	t.Run("too many flags", func(t *testing.T) {
		g := Mark(Mark(base, Position{0, 0}), Position{0, 1})
		next, ok := Chord(g, Position{1, 1})
		assert.False(t, ok)
		assert.Equal(t, g, next)
	})

	t.Run("correct flag", func(t *testing.T) {
		g := Mark(base, Position{0, 0})
		next, ok := Chord(g, Position{1, 1})
		assert.True(t, ok)
		assert.Equal(t, render(
			"F 1 0",
			"1 1 0",
			"0 0 0",
		), next.String())
		assert.True(t, IsWin(next))
		assert.Equal(t, Hidden, g.Tile(Position{2, 2}).Status)
	})

	t.Run("wrong flag detonates", func(t *testing.T) {
		g := Mark(base, Position{0, 1})
		next, ok := Chord(g, Position{1, 1})
		assert.True(t, ok)
		assert.True(t, IsLoss(next))
		assert.Equal(t, RevealedMine, next.Tile(Position{0, 0}).Status)
	})
}

func TestIsWinWithFlags(t *testing.T) {
	g := layout("*.", "..")
	g = Mark(g, Position{0, 0})
	assert.False(t, IsWin(g))
	for _, p := range []Position{{0, 1}, {1, 0}, {1, 1}} {
		g = Reveal(g, p)
	}
	assert.True(t, IsWin(g))
}

func TestRevealAllMines(t *testing.T) {
	g := layout(
		"*.*",
		"...",
		"..*",
	)
	g = Mark(g, Position{0, 0})
	g = Mark(g, Position{1, 1})
	g = Reveal(g, Position{0, 2})
	require.True(t, IsLoss(g))

	end := RevealAllMines(g)

	assert.Equal(t, render(
		"F . *",
		". X .",
		". . *",
	), end.String())
	assert.Equal(t, RevealedMine, end.Tile(Position{0, 2}).Status)
	assert.True(t, IsLoss(end))
	assert.Equal(t, Flagged, g.Tile(Position{1, 1}).Status, "snapshot changed")
}

func TestRevealRemainingSafeTiles(t *testing.T) {
	g := layout(
		"*..",
		"...",
		"..*",
	)
	g = Mark(g, Position{0, 0})
	g = Mark(g, Position{2, 2})

	end := RevealRemainingSafeTiles(g)

	assert.True(t, IsWin(end))
	assert.False(t, IsLoss(end))
	assert.Equal(t, render(
		"F 1 0",
		"1 2 1",
		"0 1 F",
	), end.String())
}

func TestRevealRemainingWithWrongFlag(t *testing.T) {
	g := layout("*.", "..")
	g = Mark(g, Position{1, 1})

	end := RevealRemainingSafeTiles(g)

	assert.True(t, IsLoss(end))
}

func TestStatusText(t *testing.T) {
	for s := Hidden; s <= FlaggedIncorrect; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	_, err := Status(42).MarshalText()
	assert.Error(t, err)
}

func TestGridGob(t *testing.T) {
	g := Mark(Reveal(layout("..*", "..."), Position{1, 0}), Position{0, 2})

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(g))
	var back Grid
	require.NoError(t, gob.NewDecoder(&buf).Decode(&back))

	assert.Equal(t, g, back)
}
