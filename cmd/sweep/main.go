package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/game"
)

var (
	log = logrus.New()

	level string
	seed  uint64
)

func init() {
	flag.StringVar(&level, "level", "easy", "difficulty: easy, medium or hard")
	flag.Uint64Var(&seed, "seed", 0, "mine layout seed, 0 for a random one")
}

const help = `commands:
  o row col   open a tile
  f row col   flag a tile
  c row col   chord a number
  r           restart
  g           show the board
  q           quit`

func printGame(w io.Writer, g *game.Game) {
	fmt.Fprint(w, g.Grid)
	fmt.Fprintf(w, "status: %s, mines left: %d\n", g.Status, g.MinesLeft())
}

func play(in io.Reader, out io.Writer, g *game.Game, rnd *rand.Rand) error {
	fmt.Fprintln(out, help)
	printGame(out, g)

	scanner := bufio.NewScanner(in)
	for fmt.Fprint(out, "> "); scanner.Scan(); fmt.Fprint(out, "> ") {
		line := scanner.Text()
		if line == "q" {
			return nil
		}
		if _, err := g.ExecuteBatch(line, rnd); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		printGame(out, g)
	}
	return scanner.Err()
}

// announce logs the seed so a game can be replayed with -seed.
func announce(log logrus.FieldLogger, level string, seed uint64) {
	log.WithFields(logrus.Fields{
		"level": level,
		"seed":  seed,
	}).Info("new game")
}

func main() {
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	params, err := game.LevelParams(level)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(params)
	if err != nil {
		log.Fatal(err)
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	announce(log, level, seed)

	if err := play(os.Stdin, os.Stdout, g, rand.New(rand.NewPCG(seed, seed))); err != nil {
		log.Fatal(err)
	}
}
