package solver

import (
	"context"
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/crossfill/grid"
)

// complete reports whether every slot has a word.
func (s *Solver) complete(a Assignment) bool {
	return len(a) == len(s.g.Slots())
}

// consistent reports whether a partial assignment violates anything:
// every word must fit its slot, be used only once, and agree with its
// assigned crossers at the shared letter.
func (s *Solver) consistent(a Assignment) bool {
	used := make(map[string]struct{}, len(a))
	for slot, w := range a {
		if _, dup := used[w]; dup {
			return false
		}
		used[w] = struct{}{}
		if len(s.letters[w]) != slot.Len {
			return false
		}
		for _, n := range s.g.Neighbors(slot) {
			wn, ok := a[n]
			if !ok {
				continue
			}
			ov, _ := s.g.Overlap(slot, n)
			if s.letters[w][ov.XIdx] != s.letters[wn][ov.YIdx] {
				return false
			}
		}
	}
	return true
}

// selectSlot picks the unassigned slot with the fewest remaining
// candidates. Ties go to the slot with more crossings; remaining ties to
// the earlier slot in scan order.
func (s *Solver) selectSlot(a Assignment) grid.Slot {
	var best grid.Slot
	found := false
	for _, slot := range s.g.Slots() {
		if _, assigned := a[slot]; assigned {
			continue
		}
		if !found {
			best, found = slot, true
			continue
		}
		ds, db := len(s.domains[slot]), len(s.domains[best])
		if ds < db || (ds == db && len(s.g.Neighbors(slot)) > len(s.g.Neighbors(best))) {
			best = slot
		}
	}
	return best
}

// orderCandidates returns the slot's candidates least-constraining first:
// ascending by the number of unassigned crossers whose domains still
// contain the same word, since placing it here would deny them that
// word. The base order is alphabetical, or shuffled for randomized
// fills, and the sort is stable, so ties keep the base order.
func (s *Solver) orderCandidates(slot grid.Slot, a Assignment) []string {
	cands := s.domains[slot].sorted()
	if s.randomize {
		s.rng.Shuffle(len(cands), func(i, j int) {
			cands[i], cands[j] = cands[j], cands[i]
		})
	}
	unassigned := lo.Filter(s.g.Neighbors(slot), func(n grid.Slot, _ int) bool {
		_, ok := a[n]
		return !ok
	})
	rank := make(map[string]int, len(cands))
	for _, w := range cands {
		for _, n := range unassigned {
			if s.domains[n].has(w) {
				rank[w]++
			}
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return rank[cands[i]] < rank[cands[j]]
	})
	return cands
}

// backtrack runs depth-first search over the remaining slots, retracting
// a trial word whenever it cannot be extended to a full fill.
func (s *Solver) backtrack(ctx context.Context, a Assignment) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.complete(a) {
		return a, nil
	}
	slot := s.selectSlot(a)
	cands := s.orderCandidates(slot, a)
	s.logDecision(slot, len(a), cands)
	for _, w := range cands {
		s.ctrs.nodes.Add(1)
		a[slot] = w
		if s.consistent(a) {
			result, err := s.backtrack(ctx, a)
			if err == nil {
				return result, nil
			}
			if !errors.Is(err, ErrNoSolution) {
				delete(a, slot)
				return nil, err
			}
		}
		delete(a, slot)
		s.ctrs.backtracks.Add(1)
	}
	return nil, ErrNoSolution
}
