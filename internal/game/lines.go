package game

import (
	"iter"
	"strings"
)

// bySep yields the pieces of s between occurrences of sep, with their
// index. The index is the line number reported in batch errors, so blank
// pieces are yielded too. An empty s yields one empty piece.
func bySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
