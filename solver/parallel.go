package solver

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

// rootSolve splits the root slot's candidates across workers. Search
// never writes to the domains, so workers share them; each branch keeps
// its own assignment. The first full fill wins and cancels the rest.
func (s *Solver) rootSolve(ctx context.Context) (Assignment, error) {
	root := s.selectSlot(Assignment{})
	cands := s.orderCandidates(root, Assignment{})
	s.logDecision(root, 0, cands)

	branchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(s.threads)
	var (
		mu    sync.Mutex
		found Assignment
	)
	for _, w := range cands {
		w := w
		g.Go(func() error {
			if branchCtx.Err() != nil {
				return nil
			}
			s.ctrs.nodes.Add(1)
			branch := s.branchSolver()
			result, err := branch.backtrack(branchCtx, Assignment{root: w})
			if err != nil {
				if errors.Is(err, ErrNoSolution) {
					s.ctrs.backtracks.Add(1)
					return nil
				}
				if branchCtx.Err() != nil {
					// Cancelled, by a winner or by the caller.
					return nil
				}
				return err
			}
			mu.Lock()
			if found == nil {
				found = result
				cancel()
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoSolution
}

// branchSolver returns a solver sharing this one's grid, domains, letter
// table, and counters, for searching one root branch. Branches get their
// own RNG and no log stream, so workers never contend on either.
func (s *Solver) branchSolver() *Solver {
	return &Solver{
		g:         s.g,
		domains:   s.domains,
		letters:   s.letters,
		threads:   1,
		randomize: s.randomize,
		rng:       frand.New(),
		ctrs:      s.ctrs,
	}
}
