package solver

import (
	"sort"
	"sync/atomic"

	"github.com/domino14/crossfill/grid"
)

// wordSet is one slot's candidate vocabulary. Sets shrink during
// propagation and are then read-only for the whole search, which is what
// lets parallel workers share them.
type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	ws := make(wordSet, len(words))
	for _, w := range words {
		ws[w] = struct{}{}
	}
	return ws
}

func (ws wordSet) has(w string) bool {
	_, ok := ws[w]
	return ok
}

// sorted returns the set's words alphabetically, so candidate order is
// deterministic.
func (ws wordSet) sorted() []string {
	words := make([]string, 0, len(ws))
	for w := range ws {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// emptyDomain returns the first slot, in scan order, whose candidate set
// is empty.
func (s *Solver) emptyDomain() (grid.Slot, bool) {
	for _, slot := range s.g.Slots() {
		if len(s.domains[slot]) == 0 {
			return slot, true
		}
	}
	return grid.Slot{}, false
}

// counters are shared across parallel workers.
type counters struct {
	nodes      atomic.Uint64
	backtracks atomic.Uint64
	revisions  atomic.Uint64
	pruned     atomic.Uint64
}
