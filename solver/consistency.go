package solver

import (
	"fmt"

	"github.com/domino14/crossfill/grid"
)

// enforceNodeConsistency drops every candidate whose length differs from
// its slot's. This is the only unary constraint; running it again is a
// no-op.
func (s *Solver) enforceNodeConsistency() {
	for _, slot := range s.g.Slots() {
		dom := s.domains[slot]
		for w := range dom {
			if len(s.letters[w]) != slot.Len {
				delete(dom, w)
				s.ctrs.pruned.Add(1)
			}
		}
	}
}

// revise makes x arc-consistent with y: any candidate of x with no
// candidate of y agreeing at the crossing letter is dropped. Reports
// whether anything was dropped. Non-crossing pairs are left alone.
func (s *Solver) revise(x, y grid.Slot) bool {
	ov, ok := s.g.Overlap(x, y)
	if !ok {
		return false
	}
	s.ctrs.revisions.Add(1)
	revised := false
	domX, domY := s.domains[x], s.domains[y]
	for wx := range domX {
		letter := s.letters[wx][ov.XIdx]
		supported := false
		for wy := range domY {
			if s.letters[wy][ov.YIdx] == letter {
				supported = true
				break
			}
		}
		if !supported {
			delete(domX, wx)
			s.ctrs.pruned.Add(1)
			revised = true
		}
	}
	return revised
}

type arc struct {
	x, y grid.Slot
}

// propagate runs AC-3 to a fixed point over the given worklist, or over
// every crossing arc when the worklist is nil. When a revision shrinks
// x's domain, the arcs (neighbor, x) go back on the list so the change
// can ripple outward. An emptied domain aborts with ErrUnsatisfiable.
func (s *Solver) propagate(worklist []arc) error {
	if worklist == nil {
		for _, slot := range s.g.Slots() {
			for _, n := range s.g.Neighbors(slot) {
				worklist = append(worklist, arc{slot, n})
			}
		}
	}
	for len(worklist) > 0 {
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if !s.revise(a.x, a.y) {
			continue
		}
		if len(s.domains[a.x]) == 0 {
			return fmt.Errorf("%v: %w", a.x, ErrUnsatisfiable)
		}
		for _, n := range s.g.Neighbors(a.x) {
			if n != a.y {
				worklist = append(worklist, arc{n, a.x})
			}
		}
	}
	return nil
}
