package word

// EditOp is a single aligned operation between a source and a target
// sequence, produced by backtracing the Wagner-Fischer DP table.
type EditOp int

const (
	OpMatch EditOp = iota
	OpSubstitute
	OpInsert // a symbol present in target but not in source
	OpDelete // a symbol present in source but not in target
)

// AlignedPos pairs a source/target index with the operation that relates
// them; SrcPos/TgtPos are -1 when the operation has no corresponding index
// on that side (Insert has no SrcPos, Delete has no TgtPos).
type AlignedPos struct {
	Op     EditOp
	SrcPos int
	TgtPos int
}

// Alignment is the ordered sequence of edit operations transforming a source
// sequence into a target sequence, as produced by EditDistance. It is opaque
// to the search core; the action space is the only consumer that interprets
// it to compute affected positions.
type Alignment []AlignedPos

// EditDistance computes the Levenshtein distance between src and tgt using
// classic Wagner-Fischer dynamic programming, and backtraces the DP table to
// produce one optimal alignment (ties broken match > substitute > insert >
// delete, matching the conventional preference for fewer edits touching
// fewer positions).
func EditDistance(src, tgt IdSequence) (int, Alignment) {
	n, m := len(src), len(tgt)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		dp[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if src[i-1] == tgt[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			best := dp[i-1][j-1] // substitute
			if dp[i][j-1] < best {
				best = dp[i][j-1] // insert
			}
			if dp[i-1][j] < best {
				best = dp[i-1][j] // delete
			}
			dp[i][j] = best + 1
		}
	}

	alignment := backtrace(src, tgt, dp)
	return dp[n][m], alignment
}

func backtrace(src, tgt IdSequence, dp [][]int) Alignment {
	i, j := len(src), len(tgt)
	ops := make(Alignment, 0, max(i, j))

	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && src[i-1] == tgt[j-1]:
			ops = append(ops, AlignedPos{Op: OpMatch, SrcPos: i - 1, TgtPos: j - 1})
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			ops = append(ops, AlignedPos{Op: OpSubstitute, SrcPos: i - 1, TgtPos: j - 1})
			i--
			j--
		case j > 0 && dp[i][j] == dp[i][j-1]+1:
			ops = append(ops, AlignedPos{Op: OpInsert, SrcPos: -1, TgtPos: j - 1})
			j--
		case i > 0 && dp[i][j] == dp[i-1][j]+1:
			ops = append(ops, AlignedPos{Op: OpDelete, SrcPos: i - 1, TgtPos: -1})
			i--
		default:
			// Should be unreachable given the DP recurrence.
			panic("word: backtrace could not find a predecessor cell")
		}
	}

	// Reverse into forward (left-to-right) order.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
