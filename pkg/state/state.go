// Package state defines the search state: an ordered sequence of words
// plus the derived distance and done-flag the tree keys its nodes on.
package state

import (
	"strconv"
	"strings"

	"github.com/sequencemcts/core/pkg/word"
)

// Target is the parallel target vocabulary a State's distance is measured
// against: Words[i] is compared to Target.Words[i].
type Target struct {
	Words []*word.Word
}

// State is an ordered sequence of interned Word references. Two states are
// equal iff they have the same length and word identities in order; Dist is
// the sum of per-order edit distances and Done iff Dist == 0.
type State struct {
	Words []*word.Word
	Dist  int
	Done  bool
}

// New builds a State from an ordered slice of words, computing Dist/Done
// against the parallel target vocabulary. len(words) must equal
// len(target.Words); this is the contract the environment and tree-node
// constructors uphold.
func New(words []*word.Word, target Target) State {
	if len(words) != len(target.Words) {
		panic("state: word count does not match target vocabulary size")
	}

	dist := 0
	for i, w := range words {
		d, _ := w.DistanceTo(target.Words[i].Seq, i)
		dist += d
	}

	return State{Words: words, Dist: dist, Done: dist == 0}
}

// Key returns a comparable identity key: the ordered tuple of word ids. Two
// equal States (by spec.md's definition) always produce equal keys, which is
// exactly the property the transposition trie relies on.
func (s State) Key() []uint64 {
	key := make([]uint64, len(s.Words))
	for i, w := range s.Words {
		key[i] = w.ID
	}
	return key
}

// String renders the state as a readable sequence of word ids, used only for
// debug logging.
func (s State) String() string {
	parts := make([]string, len(s.Words))
	for i, w := range s.Words {
		parts[i] = strconv.FormatUint(w.ID, 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Equal reports whether two states have the same length and word identities
// in order.
func (s State) Equal(o State) bool {
	if len(s.Words) != len(o.Words) {
		return false
	}
	for i := range s.Words {
		if s.Words[i].ID != o.Words[i].ID {
			return false
		}
	}
	return true
}
