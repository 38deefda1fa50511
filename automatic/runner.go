// Package automatic runs unattended batches of randomized fills, to
// gauge how fillable a structure is with a given word list and to
// collect solver statistics.
package automatic

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/archive"
	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/lexicon"
	"github.com/domino14/crossfill/render"
	"github.com/domino14/crossfill/solver"
)

// A FillRunner fills one structure repeatedly with different seeds.
type FillRunner struct {
	cfg       *config.Config
	g         *grid.Grid
	lex       *lexicon.Lexicon
	store     *archive.Store
	logchan   chan string
	structure string
}

func NewFillRunner(cfg *config.Config, g *grid.Grid, lex *lexicon.Lexicon) *FillRunner {
	return &FillRunner{
		cfg:       cfg,
		g:         g,
		lex:       lex,
		structure: strings.Join(g.Description(), "\n"),
	}
}

// SetArchive makes the runner save every successful fill.
func (r *FillRunner) SetArchive(store *archive.Store) {
	r.store = store
}

// FillOnce runs a single randomized fill with the given seed. The fill
// number n only labels log rows. Solver failures come back as errors;
// the metrics are valid either way.
func (r *FillRunner) FillOnce(ctx context.Context, n int, seed uint64) (solver.Assignment, solver.Metrics, error) {
	s := solver.New(r.g, r.lex)
	s.SetRandomize(true)
	s.SetSeed(seed)
	s.SetThreads(1)
	fill, err := s.Solve(ctx)
	m := s.Metrics()
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%d,%d,%d,%d,%d,%d,%v\n",
			n, seed, m.Nodes, m.Backtracks, m.Pruned, m.Elapsed.Milliseconds(), err == nil)
	}
	if err != nil {
		return nil, m, err
	}
	if r.store != nil {
		saveErr := r.store.Save(ctx, &archive.Fill{
			Structure:  r.structure,
			Lexicon:    r.lex.Name(),
			LexiconFP:  r.lex.FingerprintHex(),
			Seed:       seed,
			Solution:   render.Text(r.g, fill),
			Nodes:      m.Nodes,
			Backtracks: m.Backtracks,
			Duration:   m.Elapsed,
		})
		if saveErr != nil {
			log.Err(saveErr).Msg("archiving-fill")
		}
	}
	return fill, m, nil
}
