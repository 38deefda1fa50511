package solver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/testhelpers"
)

// A staircase of three 3x3 rooms joined through the middle column and
// row. Ten slots, densely crossed.
var stepsLines = []string{
	"___##",
	"___##",
	"_____",
	"##___",
	"##___",
}

// stepsSolution holds a known valid fill, indexed like Grid.Slots.
var stepsSolution = []string{
	"ABC", "AFK", "BGL", "CHMRW", "FGH", "KLMNO", "NSX", "OTY", "RST", "WXY",
}

// stepsVocab is the solution plus decoys of wrong lengths and letters.
var stepsVocab = []string{
	"ABC", "AFK", "BGL", "CHMRW", "FGH", "KLMNO", "NSX", "OTY", "RST", "WXY",
	"ZZZ", "QQQQQ", "AB", "JJJJ",
}

func checkFill(t *testing.T, g *grid.Grid, a Assignment) {
	t.Helper()
	is := is.New(t)
	is.Equal(len(a), len(g.Slots()))
	used := map[string]bool{}
	for _, slot := range g.Slots() {
		w, ok := a[slot]
		is.True(ok)
		is.True(!used[w])
		used[w] = true
		letters := []rune(w)
		is.Equal(len(letters), slot.Len)
		for _, n := range g.Neighbors(slot) {
			ov, ok := g.Overlap(slot, n)
			is.True(ok)
			is.Equal(letters[ov.XIdx], []rune(a[n])[ov.YIdx])
		}
	}
}

func TestSolveGridWithNoSlots(t *testing.T) {
	is := is.New(t)
	// A single open cell holds no word at all; the empty fill succeeds.
	g := testhelpers.MustGrid(t, "_")
	lex := testhelpers.MustLexicon(t, "CAT", "DOG")
	fill, err := New(g, lex).Solve(context.Background())
	is.NoErr(err)
	is.Equal(len(fill), 0)
	is.True(fill != nil)
}

func TestSolveCrossingPair(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "CAT", "DOG", "TIE", "ACT")
	s := New(g, lex)
	fill, err := s.Solve(context.Background())
	is.NoErr(err)
	checkFill(t, g, fill)

	// Deterministic without randomize: ACT is tried first at the root and
	// CAT fits the crossing.
	across, down := g.Slots()[0], g.Slots()[1]
	is.Equal(fill[across], "ACT")
	is.Equal(fill[down], "CAT")

	m := s.Metrics()
	is.Equal(m.Nodes, uint64(3))
	is.Equal(m.Backtracks, uint64(1))
}

func TestSolveUnsatisfiableBeforeSearch(t *testing.T) {
	is := is.New(t)
	// No four-letter words, so the lone slot's domain empties during
	// node consistency and search never starts.
	g := testhelpers.MustGrid(t, "____")
	lex := testhelpers.MustLexicon(t, "CAT", "TIE")
	s := New(g, lex)
	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrUnsatisfiable))
	is.Equal(s.Metrics().Nodes, uint64(0))
}

func TestSolveNoSolutionAfterSearch(t *testing.T) {
	is := is.New(t)
	// AC-3 is happy, since AAA supports itself across the crossing, but
	// the uniqueness rule kills every complete assignment.
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "AAA")
	s := New(g, lex)
	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))

	m := s.Metrics()
	is.Equal(m.Nodes, uint64(2))
	is.Equal(m.Backtracks, uint64(2))
}

func TestSolveSteps(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t, stepsLines...)
	lex := testhelpers.MustLexicon(t, stepsVocab...)
	s := New(g, lex)
	fill, err := s.Solve(context.Background())
	is.NoErr(err)
	checkFill(t, g, fill)

	m := s.Metrics()
	is.True(m.Nodes > 0)
	is.True(m.Pruned > 0)
	is.True(m.Elapsed > 0)
}

func TestSolveStepsParallel(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t, stepsLines...)
	lex := testhelpers.MustLexicon(t, stepsVocab...)
	s := New(g, lex)
	s.SetThreads(4)
	fill, err := s.Solve(context.Background())
	is.NoErr(err)
	checkFill(t, g, fill)
}

func TestSolveParallelNoSolution(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "AAA")
	s := New(g, lex)
	s.SetThreads(2)
	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveCancelledContext(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "CAT", "DOG", "TIE", "ACT")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(g, lex).Solve(ctx)
	is.True(errors.Is(err, context.Canceled))
}

func TestSolveRandomizedSeedIsReproducible(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t, stepsLines...)
	lex := testhelpers.MustLexicon(t, stepsVocab...)

	fills := make([]Assignment, 2)
	for i := range fills {
		s := New(g, lex)
		s.SetRandomize(true)
		s.SetSeed(7)
		fill, err := s.Solve(context.Background())
		is.NoErr(err)
		checkFill(t, g, fill)
		fills[i] = fill
	}
	is.Equal(fills[0], fills[1])
}

func TestSolveLog(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "CAT", "DOG", "TIE", "ACT")
	s := New(g, lex)
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	_, err := s.Solve(context.Background())
	is.NoErr(err)

	var decisions []LogDecision
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &decisions))
	is.True(len(decisions) >= 2)
	is.Equal(decisions[0].Depth, 0)
	is.Equal(decisions[0].Candidates, []string{"ACT", "CAT"})
}

func BenchmarkSolveSteps(b *testing.B) {
	g := testhelpers.MustGrid(b, stepsLines...)
	lex := testhelpers.MustLexicon(b, stepsVocab...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := New(g, lex)
		if _, err := s.Solve(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
