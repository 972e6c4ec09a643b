package board

import (
	"slices"

	"github.com/gammazero/deque"
)

// Reveal opens the hidden tile at p. A mine becomes RevealedMine; a safe
// tile becomes RevealedNumber and, when it has no adjacent mines, every
// hidden neighbour is revealed in turn. Anything else is a no-op.
func Reveal(g Grid, p Position) Grid {
	if !g.InBounds(p) || g.tiles[g.index(p)].Status != Hidden {
		return g
	}
	next := g.clone()
	next.flood(p)
	return next
}

// flood reveals depth-first from start on g in place. Only callers holding
// a private clone may use it.
func (g *Grid) flood(start Position) {
	stack := deque.New[Position]()
	stack.PushBack(start)

	for stack.Len() > 0 {
		p := stack.PopBack()
		t := &g.tiles[g.index(p)]
		if t.Status != Hidden {
			continue
		}
		if t.Mine {
			t.Status = RevealedMine
			continue
		}
		t.Status = RevealedNumber
		if t.AdjacentMines > 0 {
			continue
		}
		// pushed in reverse so the first neighbour is popped first
		ns := g.neighbors(p)
		for _, n := range slices.Backward(ns) {
			if g.tiles[g.index(n)].Status == Hidden {
				stack.PushBack(n)
			}
		}
	}
}

// Mark toggles a flag on a hidden tile.
func Mark(g Grid, p Position) Grid {
	if !g.InBounds(p) {
		return g
	}
	var status Status
	switch g.tiles[g.index(p)].Status {
	case Hidden:
		status = Flagged
	case Flagged:
		status = Hidden
	default:
		return g
	}
	next := g.clone()
	next.tiles[next.index(p)].Status = status
	return next
}

// Chord reveals every hidden neighbour of a revealed number once the player
// has placed exactly as many flags around it as it has adjacent mines. The
// flags themselves are trusted, so a misplaced one can detonate a mine.
// didChord reports whether the flag count matched.
func Chord(g Grid, p Position) (next Grid, didChord bool) {
	if !g.InBounds(p) {
		return g, false
	}
	t := g.tiles[g.index(p)]
	if t.Status != RevealedNumber {
		return g, false
	}
	flags := g.countNeighbors(p, func(n Tile) bool { return n.Status == Flagged })
	if flags != t.AdjacentMines {
		return g, false
	}

	next = g.clone()
	for _, n := range next.neighbors(p) {
		if next.tiles[next.index(n)].Status == Hidden {
			next.flood(n)
		}
	}
	return next, true
}
