package board

import "fmt"

type Status uint8

const (
	Hidden Status = iota
	RevealedMine
	RevealedNumber
	Flagged
	FlaggedIncorrect
)

var statusNames = [...]string{
	Hidden:           "hidden",
	RevealedMine:     "mine",
	RevealedNumber:   "number",
	Flagged:          "flagged",
	FlaggedIncorrect: "flagged-incorrect",
}

// Status implements [fmt.Stringer]
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Status implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown tile status %d", s)
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tile status %q", text)
}

type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

type Tile struct {
	Position
	Mine          bool
	Status        Status
	AdjacentMines int
}
