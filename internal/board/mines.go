package board

import (
	"fmt"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// PlaceMines returns a copy of g with mineCount mines at distinct random
// positions, none of them at exclude, and every safe tile's adjacent mine
// count filled in.
//
// Positions are drawn by rejection sampling: a uniformly random row and
// column are drawn until mineCount distinct cells other than exclude have
// been collected. Difficulty validation belongs to the caller; a mineCount
// that cannot fit panics instead of sampling forever.
func PlaceMines(g Grid, mineCount int, exclude Position, rnd *rand.Rand) Grid {
	if mineCount >= g.Size() {
		panic(fmt.Sprintf("board: %d mines do not fit a %dx%d grid", mineCount, g.rows, g.cols))
	}
	next := g.clone()

	chosen := mapset.New[Position]()
	for chosen.Size() < mineCount {
		p := Position{rnd.IntN(g.rows), rnd.IntN(g.cols)}
		if p == exclude || chosen.Has(p) {
			continue
		}
		chosen.Put(p)
	}
	chosen.Each(func(p Position) {
		next.tiles[next.index(p)].Mine = true
	})

	next.countMines()
	return next
}

func (g *Grid) countMines() {
	for i := range g.tiles {
		t := &g.tiles[i]
		if t.Mine {
			continue
		}
		t.AdjacentMines = g.countNeighbors(t.Position, func(n Tile) bool {
			return n.Mine
		})
	}
}
