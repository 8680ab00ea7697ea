// Package word holds the immutable per-word data of a search state: symbol
// content, and (lazily, memoized) the edit distance and alignment against a
// fixed target word for a given "order" — the word's position in the
// parallel target vocabulary.
package word

import (
	"sync"

	"github.com/sequencemcts/core/pkg/symbol"
)

// IdSequence is an ordered sequence of symbols.
type IdSequence []symbol.Symbol

// Equal reports whether two sequences hold the same symbols in the same
// order.
func (s IdSequence) Equal(o IdSequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// key returns a comparable string encoding of the sequence, used only to
// canonicalise words by content inside an interning Table.
func (s IdSequence) key() string {
	buf := make([]byte, 0, len(s)*3)
	for _, sym := range s {
		v := uint32(int32(sym)) + 1 // shift so PAD (-1) never collides with 0
		buf = append(buf, byte(v), byte(v>>8), byte(v>>16))
	}
	return string(buf)
}

// Word is an immutable symbol sequence plus a memoized cache of per-order
// edit distance and alignment against the target vocabulary. Two Words with
// equal content always share the same ID (see Table.Intern): equal content
// implies shared identity.
type Word struct {
	ID  uint64
	Seq IdSequence

	mu    sync.Mutex
	cache map[int]distEntry
}

type distEntry struct {
	dist      int
	alignment Alignment
}

func newWord(id uint64, seq IdSequence) *Word {
	cp := make(IdSequence, len(seq))
	copy(cp, seq)
	return &Word{ID: id, Seq: cp, cache: make(map[int]distEntry)}
}

// Len returns the number of symbols in the word.
func (w *Word) Len() int { return len(w.Seq) }

// DistanceTo returns the edit distance and alignment between this word and
// the target vocabulary's word at the given order, computing and memoizing
// it on first use.
func (w *Word) DistanceTo(target IdSequence, order int) (int, Alignment) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if entry, ok := w.cache[order]; ok {
		return entry.dist, entry.alignment
	}

	dist, alignment := EditDistance(w.Seq, target)
	w.cache[order] = distEntry{dist: dist, alignment: alignment}
	return dist, alignment
}
