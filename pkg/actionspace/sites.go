package actionspace

import (
	"github.com/sequencemcts/core/pkg/mcts"
	"github.com/sequencemcts/core/pkg/state"
	"github.com/sequencemcts/core/pkg/symbol"
	"github.com/sequencemcts/core/pkg/word"
)

// site is one position where a word's current symbol diverges from the
// parallel target vocabulary's symbol at the same order — a candidate
// location for a sound-change edit. wordSeq is the word's own sequence, so
// context lookups never need to thread the owning State separately.
type site struct {
	wordIndex int
	position  int
	src       symbol.Symbol // PAD if this is an insertion site (no source symbol)
	tgt       symbol.Symbol // PAD if this is a deletion site (no target symbol)
	wordSeq   word.IdSequence
}

// mismatchSites walks an owning TreeNode's State against the ActionSpace's
// target vocabulary and collects every substitution/deletion site: a
// position where the word's symbol differs from (or has no counterpart in)
// the target. Insertion sites are deliberately excluded — a rule that only
// ever deletes or substitutes never needs to propose a position that
// doesn't exist in the source word, and the search's composite action has
// no phase slot for "insert here" through-put.
func (a *ActionSpace) mismatchSites(owner *mcts.Node) []site {
	st := owner.State()
	var sites []site
	for wi, w := range st.Words {
		tgtWord := a.target.Words[wi]
		_, alignment := w.DistanceTo(tgtWord.Seq, wi)
		for _, op := range alignment {
			switch op.Op {
			case word.OpSubstitute:
				sites = append(sites, site{
					wordIndex: wi,
					position:  op.SrcPos,
					src:       w.Seq[op.SrcPos],
					tgt:       tgtWord.Seq[op.TgtPos],
					wordSeq:   w.Seq,
				})
			case word.OpDelete:
				sites = append(sites, site{
					wordIndex: wi,
					position:  op.SrcPos,
					src:       w.Seq[op.SrcPos],
					tgt:       symbol.PAD,
					wordSeq:   w.Seq,
				})
			}
		}
	}
	return sites
}

// Target returns the parallel target vocabulary this action space measures
// mismatches against.
func (a *ActionSpace) Target() state.Target {
	return a.target
}
