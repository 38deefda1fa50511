package automatic

import (
	"context"
	"encoding/binary"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/crossfill/archive"
	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/lexicon"
	"github.com/domino14/crossfill/solver"
	"github.com/domino14/crossfill/stats"
)

var (
	FillCounter *expvar.Int
	IsFilling   *expvar.Int
)

func init() {
	FillCounter = expvar.NewInt("fillCounter")
	IsFilling = expvar.NewInt("isFilling")
}

type job struct {
	n    int
	seed uint64
}

// BatchStats aggregates solver metrics across a batch of fills.
type BatchStats struct {
	mu         sync.Mutex
	attempts   int
	filled     int
	nodes      stats.Statistic
	backtracks stats.Statistic
	duration   stats.Statistic
}

func (bs *BatchStats) record(m solver.Metrics, solved bool) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.attempts++
	if solved {
		bs.filled++
	}
	bs.nodes.Push(float64(m.Nodes))
	bs.backtracks.Push(float64(m.Backtracks))
	bs.duration.Push(float64(m.Elapsed.Microseconds()) / 1000.0)
}

func (bs *BatchStats) Attempts() int {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.attempts
}

func (bs *BatchStats) Filled() int {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.filled
}

// Display formats the batch summary for the shell. The ± terms are 95%
// confidence intervals on the means.
func (bs *BatchStats) Display() string {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	z95 := stats.ZVal(95)
	return fmt.Sprintf(
		"filled %d of %d\n"+
			"nodes: mean %.1f ± %.1f, stdev %.1f (min %.0f, max %.0f)\n"+
			"backtracks: mean %.1f ± %.1f, stdev %.1f\n"+
			"duration: mean %.2f ± %.2f ms (max %.2f ms)",
		bs.filled, bs.attempts,
		bs.nodes.Mean(), z95*bs.nodes.StandardError(), bs.nodes.Stdev(),
		bs.nodes.Min(), bs.nodes.Max(),
		bs.backtracks.Mean(), z95*bs.backtracks.StandardError(), bs.backtracks.Stdev(),
		bs.duration.Mean(), z95*bs.duration.StandardError(), bs.duration.Max())
}

// RunBatch fills the structure numFills times across the given number of
// worker threads and returns the aggregated stats. Individual fills that
// come up empty are recorded, not returned as errors. When seeds is
// non-nil it determines both the seeds and the number of fills;
// otherwise seeds count up from the configured base seed, or from a
// random base when that is zero.
func RunBatch(ctx context.Context, cfg *config.Config, g *grid.Grid,
	lex *lexicon.Lexicon, store *archive.Store, numFills int, threads int,
	logfilename string, seeds []uint64) (*BatchStats, error) {

	if IsFilling.Value() > 0 {
		return nil, errors.New("a batch is already running, please wait for it to finish")
	}
	if seeds != nil {
		numFills = len(seeds)
	}
	if numFills < 1 {
		return nil, errors.New("need at least one fill")
	}
	if threads < 1 {
		threads = 1
	}
	base := cfg.GetUint64(config.ConfigSeed)
	if base == 0 {
		base = binary.LittleEndian.Uint64(frand.Bytes(8))
	}
	seedFor := func(i int) uint64 {
		if seeds != nil {
			return seeds[i]
		}
		return base + uint64(i)
	}

	var logfile *os.File
	if logfilename != "" {
		var err error
		if logfile, err = os.Create(logfilename); err != nil {
			return nil, err
		}
	}
	log.Debug().Int("fills", numFills).Int("threads", threads).Msg("starting-batch")

	FillCounter.Set(0)
	jobs := make(chan job, 100)
	logChan := make(chan string, 100)
	batchStats := &BatchStats{}

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			r := NewFillRunner(cfg, g, lex)
			if logfile != nil {
				r.logchan = logChan
			}
			r.SetArchive(store)
			IsFilling.Add(1)
			defer IsFilling.Add(-1)
			for jb := range jobs {
				_, m, err := r.FillOnce(ctx, jb.n, jb.seed)
				if err != nil && !errors.Is(err, solver.ErrNoSolution) &&
					!errors.Is(err, solver.ErrUnsatisfiable) {
					// Cancelled; the feeder will stop queueing.
					continue
				}
				batchStats.record(m, err == nil)
				FillCounter.Add(1)
			}
		}()
	}

	go func() {
	fillLoop:
		for i := 0; i < numFills; i++ {
			select {
			case <-ctx.Done():
				log.Info().Msg("got stop signal, winding batch down")
				break fillLoop
			case jobs <- job{n: i + 1, seed: seedFor(i)}:
			}
		}
		close(jobs)
	}()

	loggerDone := make(chan struct{})
	go func() {
		defer close(loggerDone)
		if logfile == nil {
			return
		}
		logfile.WriteString("fill,seed,nodes,backtracks,pruned,duration_ms,solved\n")
		for msg := range logChan {
			logfile.WriteString(msg)
		}
		logfile.Close()
	}()

	wg.Wait()
	close(logChan)
	<-loggerDone
	log.Debug().Int("filled", batchStats.Filled()).Msg("batch-done")
	return batchStats, nil
}
