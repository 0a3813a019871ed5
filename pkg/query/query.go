// Package query answers structural questions over a flat.Sequence using
// level comparisons alone. Every function is pure and safe for concurrent
// use on a shared sequence.
//
// Searches return (index, true) on a match and (NotFound, false) otherwise.
// Index 0 with true is a real match on the first record, never a miss.
package query

import (
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// NotFound is the index returned alongside false.
const NotFound = -1

// EndOfSubtree returns the exclusive end of i's descendant span: the first
// index after i whose level is not greater than level[i], or len(seq).
func EndOfSubtree(seq flat.Sequence, i int) int {
	if !seq.Valid(i) {
		return len(seq)
	}
	level := seq[i].Level
	for j := i + 1; j < len(seq); j++ {
		if seq[j].Level <= level {
			return j
		}
	}
	return len(seq)
}

// Parent returns the nearest preceding record at a lower level.
func Parent(seq flat.Sequence, i int) (int, bool) {
	if !seq.Valid(i) {
		return NotFound, false
	}
	level := seq[i].Level
	for j := i - 1; j >= 0; j-- {
		if seq[j].Level < level {
			return j, true
		}
	}
	return NotFound, false
}

// FindAncestor reports whether the scope directly enclosing i matches m.
// The scan stops at the first record with a lower level; if that record
// does not match, i has no such ancestor.
func FindAncestor(seq flat.Sequence, i int, m syntax.Match) (int, bool) {
	p, ok := Parent(seq, i)
	if !ok || !m.Matches(seq[p].Kind) {
		return NotFound, false
	}
	return p, true
}

// FindPreceding scans backward from i within i's enclosing scope and
// returns the nearest record matching m. Leaving the scope or reaching the
// start of the sequence is a miss.
func FindPreceding(seq flat.Sequence, i int, m syntax.Match) (int, bool) {
	if !seq.Valid(i) {
		return NotFound, false
	}
	level := seq[i].Level
	for j := i - 1; j >= 0; j-- {
		if seq[j].Level < level {
			return NotFound, false
		}
		if m.Matches(seq[j].Kind) {
			return j, true
		}
	}
	return NotFound, false
}

// FindDescendant returns the first record inside i's subtree matching m.
func FindDescendant(seq flat.Sequence, i int, m syntax.Match) (int, bool) {
	if !seq.Valid(i) {
		return NotFound, false
	}
	end := EndOfSubtree(seq, i)
	for j := i + 1; j < end; j++ {
		if m.Matches(seq[j].Kind) {
			return j, true
		}
	}
	return NotFound, false
}

// FindChild returns the first direct child of i matching m.
func FindChild(seq flat.Sequence, i int, m syntax.Match) (int, bool) {
	if !seq.Valid(i) {
		return NotFound, false
	}
	level := seq[i].Level + 1
	end := EndOfSubtree(seq, i)
	for j := i + 1; j < end; j++ {
		if seq[j].Level == level && m.Matches(seq[j].Kind) {
			return j, true
		}
	}
	return NotFound, false
}

// FindFollowing scans forward from i through the rest of i's enclosing
// scope: i's later siblings and all their descendants.
func FindFollowing(seq flat.Sequence, i int, m syntax.Match) (int, bool) {
	if !seq.Valid(i) {
		return NotFound, false
	}
	level := seq[i].Level
	for j := i + 1; j < len(seq); j++ {
		if seq[j].Level < level {
			return NotFound, false
		}
		if m.Matches(seq[j].Kind) {
			return j, true
		}
	}
	return NotFound, false
}

// FindDescendantPath chains FindDescendant, using each match as the origin
// of the next step. An empty path returns i itself.
func FindDescendantPath(seq flat.Sequence, i int, path ...syntax.Match) (int, bool) {
	if !seq.Valid(i) {
		return NotFound, false
	}
	cur := i
	for _, m := range path {
		next, ok := FindDescendant(seq, cur, m)
		if !ok {
			return NotFound, false
		}
		cur = next
	}
	return cur, true
}

// FindAny runs a forward search once per match and returns the lowest
// index found. Backward searches need the highest index instead.
func FindAny(
	seq flat.Sequence,
	i int,
	search func(flat.Sequence, int, syntax.Match) (int, bool),
	ms ...syntax.Match,
) (int, bool) {
	best := NotFound
	for _, m := range ms {
		j, ok := search(seq, i, m)
		if ok && (best == NotFound || j < best) {
			best = j
		}
	}
	return best, best != NotFound
}
