// Package ttable implements the transposition table: a trie keyed on the
// ordered tuple of word identities that canonicalises search states so that
// two parents whose composite actions produce the same state share one
// node. Sharing turns the search "tree" into a DAG; the environment relies on
// this table being the single source of truth for "does this state already
// have a node". Nothing in pkg/mcts removes entries: there is no subtree
// garbage collection, and Remove is only called by whoever owns the table.
package ttable

import "sync"

// Node is the minimal contract a canonical value stored in the table must
// satisfy. pkg/mcts's *Node implements it; keeping the table generic over
// this small interface avoids an import cycle between ttable and mcts
// (TreeNode back-references its own parents, which only mcts needs to know
// about).
type Node interface {
	// Persistent reports whether this node is exempt from removal (the
	// start and end nodes of a search).
	Persistent() bool
}

type branch[N Node] struct {
	mu       sync.Mutex
	children map[uint64]*branch[N]
	value    N
	hasValue bool
}

func newBranch[N Node]() *branch[N] {
	return &branch[N]{children: make(map[uint64]*branch[N])}
}

// Table is a trie from an ordered []uint64 (word identities) to a canonical
// value of type N. All operations are safe for concurrent use; writes take
// fine-grained per-branch locks rather than one global lock, per spec.md §5.
type Table[N Node] struct {
	root *branch[N]
	size int
	mu   sync.Mutex // guards size only
}

// New creates an empty transposition table.
func New[N Node]() *Table[N] {
	return &Table[N]{root: newBranch[N]()}
}

// GetOrInsert returns the canonical value for key, creating one with create
// if no canonical value exists yet. The created bool reports whether create
// was the winning candidate (false means an existing node was returned and
// any candidate create() had already built was discarded).
func (t *Table[N]) GetOrInsert(key []uint64, create func() N) (value N, created bool) {
	node := t.root
	for _, id := range key {
		node.mu.Lock()
		next, ok := node.children[id]
		if !ok {
			next = newBranch[N]()
			node.children[id] = next
		}
		prev := node
		node = next
		prev.mu.Unlock()
	}

	node.mu.Lock()
	defer node.mu.Unlock()

	if node.hasValue {
		return node.value, false
	}

	v := create()
	node.value = v
	node.hasValue = true
	t.mu.Lock()
	t.size++
	t.mu.Unlock()
	return v, true
}

// Lookup returns the canonical value for key, if any.
func (t *Table[N]) Lookup(key []uint64) (value N, ok bool) {
	node := t.root
	for _, id := range key {
		node.mu.Lock()
		next, exists := node.children[id]
		node.mu.Unlock()
		if !exists {
			var zero N
			return zero, false
		}
		node = next
	}

	node.mu.Lock()
	defer node.mu.Unlock()
	if !node.hasValue {
		var zero N
		return zero, false
	}
	return node.value, true
}

// Remove deletes the canonical value at key, provided it exists and is not
// Persistent. It is a no-op for persistent nodes and for keys with no
// canonical value (removing a node twice, or a node that was never
// inserted, is always safe).
func (t *Table[N]) Remove(key []uint64) {
	node := t.root
	for _, id := range key {
		node.mu.Lock()
		next, exists := node.children[id]
		node.mu.Unlock()
		if !exists {
			return
		}
		node = next
	}

	node.mu.Lock()
	defer node.mu.Unlock()
	if !node.hasValue || node.value.Persistent() {
		return
	}

	var zero N
	node.value = zero
	node.hasValue = false
	t.mu.Lock()
	t.size--
	t.mu.Unlock()
}

// Size returns the total number of canonical nodes currently registered.
func (t *Table[N]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}
