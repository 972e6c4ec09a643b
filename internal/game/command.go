package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/board"
)

type Verb byte

const (
	Get     Verb = 'g'
	Open    Verb = 'o'
	Flag    Verb = 'f'
	Chord   Verb = 'c'
	Restart Verb = 'r'
)

// Maps known verbs to number of arguments
var verbNargs = map[Verb]int{
	Get:     0,
	Open:    2,
	Flag:    2,
	Chord:   2,
	Restart: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid arguments")
)

type Command struct {
	Verb Verb
	Pos  board.Position
}

// Command implements [fmt.Stringer]
func (c Command) String() string {
	if verbNargs[c.Verb] == 0 {
		return fmt.Sprintf("%c", c.Verb)
	}
	return fmt.Sprintf("%c %d %d", c.Verb, c.Pos.Row, c.Pos.Col)
}

func parseRowCol(twoStrings []string) (p board.Position, err error) {
	if p.Row, err = strconv.Atoi(twoStrings[0]); err != nil {
		return p, fmt.Errorf("%w: row must be an int", ErrBadArguments)
	}
	if p.Col, err = strconv.Atoi(twoStrings[1]); err != nil {
		return p, fmt.Errorf("%w: col must be an int", ErrBadArguments)
	}
	return p, nil
}

// ParseCommand reads a single command of the form
//
//	o row col   reveal a tile
//	f row col   toggle a flag
//	c row col   chord a revealed number
//	r           restart from the initial layout
//	g           no-op, useful to fetch the state
func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 || len(parts[0]) != 1 {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, line)
	}
	verb := Verb(parts[0][0])
	nargs, ok := verbNargs[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%w: %c takes %d, got %d",
			ErrBadArguments, verb, nargs, len(parts)-1)
	}
	c := Command{Verb: verb}
	if nargs == 2 {
		pos, err := parseRowCol(parts[1:])
		if err != nil {
			return Command{}, err
		}
		c.Pos = pos
	}
	return c, nil
}

// Execute applies c to g. chorded is only meaningful for Chord.
func (g *Game) Execute(c Command, rnd *rand.Rand) (chorded bool, err error) {
	switch c.Verb {
	case Get:
		return false, nil
	case Open:
		return false, g.Open(c.Pos, rnd)
	case Flag:
		return false, g.Flag(c.Pos)
	case Chord:
		return g.Chord(c.Pos)
	case Restart:
		g.Restart()
		return false, nil
	}
	return false, fmt.Errorf("%w %q", ErrUnknownCommand, rune(c.Verb))
}

type LineError struct {
	Line int
	Err  error
}

// LineError implements [error]
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ExecuteBatch runs newline separated commands in order and stops early
// once the game is over. Blank lines are skipped. The first failing line
// is reported as a [*LineError]; commands before it have already been
// applied, so callers that need all-or-nothing must work on a copy.
// chorded reflects the last chord in the batch.
func (g *Game) ExecuteBatch(text string, rnd *rand.Rand) (chorded bool, err error) {
	for i, line := range bySep(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := ParseCommand(line)
		if err != nil {
			return chorded, &LineError{i, err}
		}
		ok, err := g.Execute(c, rnd)
		if err != nil {
			return chorded, &LineError{i, err}
		}
		if c.Verb == Chord {
			chorded = ok
		}
		if g.Over() {
			break
		}
	}
	return chorded, nil
}
