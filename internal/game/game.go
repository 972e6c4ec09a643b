package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vancomm/minesweeper/internal/board"
)

var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrGameOver    = errors.New("game is over")
)

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

var statusNames = [...]string{
	Playing: "playing",
	Won:     "won",
	Lost:    "lost",
}

// Status implements [fmt.Stringer]
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game status %q", text)
}

// Game drives a board through one round of play. Mines are placed on the
// first reveal so that it is always safe; Initial keeps the layout right
// after placement for Restart.
type Game struct {
	Params  Params
	Grid    board.Grid
	Initial board.Grid
	Placed  bool
	Status  Status
}

func New(params Params) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	grid := board.New(params.Rows, params.Cols)
	g := &Game{
		Params:  params,
		Grid:    grid,
		Initial: grid,
	}
	return g, nil
}

func (g *Game) Over() bool {
	return g.Status != Playing
}

// MinesLeft is the mine count minus placed flags. It goes negative when
// the player over-flags.
func (g *Game) MinesLeft() int {
	return g.Params.MineCount - board.FlaggedCount(g.Grid)
}

func (g *Game) check(p board.Position) error {
	if g.Over() {
		return ErrGameOver
	}
	if !g.Grid.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return nil
}

func (g *Game) Open(p board.Position, rnd *rand.Rand) error {
	if err := g.check(p); err != nil {
		return err
	}
	if !g.Placed {
		if g.Grid.Tile(p).Status != board.Hidden {
			return nil
		}
		g.Initial = board.PlaceMines(g.Initial, g.Params.MineCount, p, rnd)
		g.Grid = carryFlags(g.Initial, g.Grid)
		g.Placed = true
	}
	g.Grid = board.Reveal(g.Grid, p)
	g.settle()
	return nil
}

// carryFlags copies flags placed before the first reveal onto the freshly
// mined grid.
func carryFlags(mined, played board.Grid) board.Grid {
	for t := range played.Tiles() {
		if t.Status == board.Flagged {
			mined = board.Mark(mined, t.Position)
		}
	}
	return mined
}

func (g *Game) Flag(p board.Position) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.Grid = board.Mark(g.Grid, p)
	g.settle()
	return nil
}

// Chord reports false when the flags around p do not match its number.
func (g *Game) Chord(p board.Position) (bool, error) {
	if err := g.check(p); err != nil {
		return false, err
	}
	var chorded bool
	g.Grid, chorded = board.Chord(g.Grid, p)
	g.settle()
	return chorded, nil
}

// Restart returns to the layout the game had right after mines were
// placed. Before the first reveal that is the empty board and placement
// stays pending.
func (g *Game) Restart() {
	g.Grid = g.Initial
	g.Status = Playing
}

// Forfeit ends a running game as lost and exposes the mines.
func (g *Game) Forfeit() {
	if g.Over() {
		return
	}
	g.Grid = board.RevealAllMines(g.Grid)
	g.Status = Lost
}

// settle derives the status from the grid alone. Once flags account for
// every mine the rest of the board is opened for the player, which may
// also expose a mine left under a wrong flag.
func (g *Game) settle() {
	if g.Over() || !g.Placed {
		return
	}
	if !board.IsLoss(g.Grid) && !board.IsWin(g.Grid) && g.MinesLeft() == 0 {
		g.Grid = board.RevealRemainingSafeTiles(g.Grid)
	}
	switch {
	case board.IsLoss(g.Grid):
		g.Grid = board.RevealAllMines(g.Grid)
		g.Status = Lost
	case board.IsWin(g.Grid):
		g.Status = Won
	}
}
