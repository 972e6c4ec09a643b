package board

// IsWin reports whether every safe tile has been revealed.
func IsWin(g Grid) bool {
	for _, t := range g.tiles {
		switch {
		case t.Status == RevealedNumber:
		case t.Mine && (t.Status == Hidden || t.Status == Flagged):
		default:
			return false
		}
	}
	return true
}

func IsLoss(g Grid) bool {
	for _, t := range g.tiles {
		if t.Status == RevealedMine {
			return true
		}
	}
	return false
}

// RevealAllMines builds the board shown after a loss: unflagged mines are
// exposed, flags on mines stay, flags on safe tiles turn FlaggedIncorrect.
func RevealAllMines(g Grid) Grid {
	next := g.clone()
	for i := range next.tiles {
		t := &next.tiles[i]
		switch {
		case t.Status == Flagged && !t.Mine:
			t.Status = FlaggedIncorrect
		case t.Status == Flagged:
		case t.Mine:
			t.Status = RevealedMine
		}
	}
	return next
}

// RevealRemainingSafeTiles reveals every tile still hidden, in row-major
// order. It is meant for the moment all mines are accounted for by flags;
// if a flag is wrong, the hidden mine it left behind is revealed too.
func RevealRemainingSafeTiles(g Grid) Grid {
	next := g.clone()
	for i := range next.tiles {
		if next.tiles[i].Status == Hidden {
			next.flood(next.tiles[i].Position)
		}
	}
	return next
}
