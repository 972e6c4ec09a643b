package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/game"
)

var (
	errBadRequest = errors.New("bad request")
	ErrBadMove    = errors.New("move must be one of 'open', 'flag', 'chord'")
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

// ParseGameParams reads either a named level or explicit dimensions.
func ParseGameParams(query url.Values) (game.Params, error) {
	if level := query.Get("level"); level != "" {
		return game.LevelParams(level)
	}
	var dto CreateNewGameDTO
	if err := decoder.Decode(&dto, query); err != nil {
		return game.Params{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return game.Params(dto), nil
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(query url.Values) (board.Position, error) {
	var dto PositionDTO
	if err := decoder.Decode(&dto, query); err != nil {
		return board.Position{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return board.Position(dto), nil
}

func ParseGameMove(s string) (game.Verb, error) {
	switch strings.ToLower(s) {
	case "open":
		return game.Open, nil
	case "flag":
		return game.Flag, nil
	case "chord":
		return game.Chord, nil
	}
	return 0, ErrBadMove
}

type Session struct {
	ID        string
	Game      game.Game
	StartedAt time.Time
	EndedAt   *time.Time
}

// stamp keeps EndedAt in step with the game: set when it ends, cleared
// when a restart puts it back in play.
func (s *Session) stamp(now time.Time) {
	switch {
	case !s.Game.Over():
		s.EndedAt = nil
	case s.EndedAt == nil:
		s.EndedAt = &now
	}
}

type TileDTO struct {
	Status board.Status `json:"status"`
	Count  *int         `json:"count,omitempty"`
	Mine   *bool        `json:"mine,omitempty"`
}

type GameSessionDTO struct {
	SessionID string      `json:"session_id"`
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	MineCount int         `json:"mine_count"`
	MinesLeft int         `json:"mines_left"`
	Status    game.Status `json:"status"`
	Chorded   *bool       `json:"chorded,omitempty"`
	Grid      [][]TileDTO `json:"grid"`
	StartedAt int64       `json:"started_at"`
	EndedAt   *int64      `json:"ended_at,omitempty"`
}

// NewGameSessionDTO hides where the mines are until the game is over.
func NewGameSessionDTO(s *Session) *GameSessionDTO {
	g := &s.Game
	over := g.Over()

	grid := make([][]TileDTO, g.Grid.Rows())
	for t := range g.Grid.Tiles() {
		dto := TileDTO{Status: t.Status}
		if t.Status == board.RevealedNumber {
			count := t.AdjacentMines
			dto.Count = &count
		}
		if over {
			mine := t.Mine
			dto.Mine = &mine
		}
		grid[t.Row] = append(grid[t.Row], dto)
	}

	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}

	return &GameSessionDTO{
		SessionID: s.ID,
		Rows:      g.Params.Rows,
		Cols:      g.Params.Cols,
		MineCount: g.Params.MineCount,
		MinesLeft: g.MinesLeft(),
		Status:    g.Status,
		Grid:      grid,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

type LineErrorDTO struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}
