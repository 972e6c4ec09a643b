package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	MaxRows = 12
	MaxCols = 16
)

var ErrInvalidParams = errors.New("invalid game params")

type Params struct {
	Rows      int `json:"rows" schema:"rows"`
	Cols      int `json:"cols" schema:"cols"`
	MineCount int `json:"mine_count" schema:"mine_count"`
}

func (p Params) Validate() error {
	switch {
	case p.Rows < 1 || p.Rows > MaxRows:
		return fmt.Errorf("%w: rows must be within 1..%d, got %d", ErrInvalidParams, MaxRows, p.Rows)
	case p.Cols < 1 || p.Cols > MaxCols:
		return fmt.Errorf("%w: cols must be within 1..%d, got %d", ErrInvalidParams, MaxCols, p.Cols)
	case p.MineCount < 1 || p.MineCount >= p.Rows*p.Cols:
		return fmt.Errorf("%w: mine count must be within 1..%d, got %d",
			ErrInvalidParams, p.Rows*p.Cols-1, p.MineCount)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.MineCount)
}

type Level struct {
	Name string `json:"name"`
	Params
}

var Levels = []Level{
	{"easy", Params{Rows: 8, Cols: 8, MineCount: 10}},
	{"medium", Params{Rows: 10, Cols: 10, MineCount: 20}},
	{"hard", Params{Rows: 12, Cols: 16, MineCount: 40}},
}

func LevelParams(name string) (Params, error) {
	i := slices.IndexFunc(Levels, func(l Level) bool {
		return strings.EqualFold(l.Name, name)
	})
	if i < 0 {
		return Params{}, fmt.Errorf("%w: unknown level %q", ErrInvalidParams, name)
	}
	return Levels[i].Params, nil
}
