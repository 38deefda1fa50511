// Package solver fills crossword grids. Each slot is a variable whose
// domain is the vocabulary; node consistency and AC-3 propagation narrow
// the domains, then heuristic backtracking searches for a complete fill.
package solver

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/lexicon"
)

var (
	// ErrUnsatisfiable means consistency propagation emptied a slot's
	// candidate set before search even began.
	ErrUnsatisfiable = errors.New("grid cannot be filled with this word list")
	// ErrNoSolution means backtracking exhausted every combination.
	ErrNoSolution = errors.New("no filling found")
)

// An Assignment maps slots to the words chosen for them. A complete
// assignment covers every slot in the grid.
type Assignment map[grid.Slot]string

func (a Assignment) Copy() Assignment {
	c := make(Assignment, len(a))
	for slot, w := range a {
		c[slot] = w
	}
	return c
}

// Metrics is a snapshot of the work a solve performed.
type Metrics struct {
	Nodes      uint64
	Backtracks uint64
	Revisions  uint64
	Pruned     uint64
	Elapsed    time.Duration
}

// Solver holds the state for filling one grid with one vocabulary. It is
// single-use; create a new one for every solve.
type Solver struct {
	g       *grid.Grid
	domains map[grid.Slot]wordSet
	letters map[string][]rune

	threads   int
	randomize bool
	seed      uint64
	rng       *frand.RNG
	logStream io.Writer

	ctrs    *counters
	elapsed time.Duration
}

// New prepares a solver. Every slot starts with the full vocabulary as
// its domain; Solve narrows from there.
func New(g *grid.Grid, lex *lexicon.Lexicon) *Solver {
	s := &Solver{
		g:       g,
		domains: make(map[grid.Slot]wordSet, len(g.Slots())),
		letters: make(map[string][]rune, lex.Size()),
		threads: 1,
		rng:     frand.New(),
		ctrs:    &counters{},
	}
	for _, w := range lex.Words() {
		s.letters[w] = []rune(w)
	}
	for _, slot := range g.Slots() {
		s.domains[slot] = newWordSet(lex.Words())
	}
	return s
}

// SetThreads sets the number of workers used to search. With more than
// one, the root slot's candidates are split across workers.
func (s *Solver) SetThreads(threads int) {
	if threads < 1 {
		threads = 1
	}
	s.threads = threads
}

// SetRandomize shuffles candidate words before the heuristic ordering,
// so equally ranked words come out in a random order. Repeated solves of
// the same puzzle then produce varied fills.
func (s *Solver) SetRandomize(r bool) {
	s.randomize = r
}

// SetSeed makes randomized fills reproducible. A zero seed keeps the
// entropy-seeded generator.
func (s *Solver) SetSeed(seed uint64) {
	s.seed = seed
	if seed == 0 {
		s.rng = frand.New()
		return
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	s.rng = frand.NewCustom(key[:], 1024, 12)
}

// SetLogStream directs a YAML log of search decisions to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Solve finds one complete fill. It returns ErrUnsatisfiable if the
// puzzle dies during propagation, ErrNoSolution if search exhausts every
// combination, and the context's error if the caller gives up first.
func (s *Solver) Solve(ctx context.Context) (Assignment, error) {
	start := time.Now()
	defer func() {
		s.elapsed = time.Since(start)
		log.Debug().
			Uint64("nodes", s.ctrs.nodes.Load()).
			Uint64("backtracks", s.ctrs.backtracks.Load()).
			Uint64("revisions", s.ctrs.revisions.Load()).
			Uint64("pruned", s.ctrs.pruned.Load()).
			Dur("elapsed", s.elapsed).
			Msg("solve-done")
	}()

	s.enforceNodeConsistency()
	if slot, ok := s.emptyDomain(); ok {
		return nil, fmt.Errorf("%v: %w", slot, ErrUnsatisfiable)
	}
	if err := s.propagate(nil); err != nil {
		return nil, err
	}
	if len(s.g.Slots()) == 0 {
		return Assignment{}, nil
	}
	if s.threads > 1 {
		return s.rootSolve(ctx)
	}
	return s.backtrack(ctx, make(Assignment, len(s.domains)))
}

// Metrics reports counters accumulated so far. After Solve returns they
// cover the whole search, including parallel workers.
func (s *Solver) Metrics() Metrics {
	return Metrics{
		Nodes:      s.ctrs.nodes.Load(),
		Backtracks: s.ctrs.backtracks.Load(),
		Revisions:  s.ctrs.revisions.Load(),
		Pruned:     s.ctrs.pruned.Load(),
		Elapsed:    s.elapsed,
	}
}

// Remaining returns the current size of a slot's candidate set.
func (s *Solver) Remaining(slot grid.Slot) int {
	return len(s.domains[slot])
}
