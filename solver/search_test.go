package solver

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crossfill/testhelpers"
)

func TestConsistent(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "CAT", "DOG", "TIE", "ACT", "COGS")
	s := New(g, lex)
	across, down := g.Slots()[0], g.Slots()[1]

	type testdata struct {
		name string
		a    Assignment
		ok   bool
	}
	cases := []testdata{
		{"empty", Assignment{}, true},
		{"partial", Assignment{across: "CAT"}, true},
		{"agreeing cross", Assignment{across: "CAT", down: "ACT"}, true},
		{"disagreeing cross", Assignment{across: "CAT", down: "DOG"}, false},
		{"duplicate word", Assignment{across: "ACT", down: "ACT"}, false},
		{"wrong length", Assignment{across: "COGS"}, false},
	}
	for _, tc := range cases {
		is.Equal(s.consistent(tc.a), tc.ok)
	}
}

func TestSelectSlotFewestCandidates(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"_____",
		"#_#_#",
		"#_#_#",
	)
	lex := testhelpers.MustLexicon(t, "AAAAA")
	s := New(g, lex)
	across, d1, d3 := g.Slots()[0], g.Slots()[1], g.Slots()[2]

	s.domains[across] = newWordSet([]string{"AAAAA", "BBBBB"})
	s.domains[d1] = newWordSet([]string{"AAA", "BBB", "CCC"})
	s.domains[d3] = newWordSet([]string{"AAA"})

	is.Equal(s.selectSlot(Assignment{}), d3)
	is.Equal(s.selectSlot(Assignment{d3: "AAA"}), across)
}

func TestSelectSlotDegreeTiebreak(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"_____",
		"#_#_#",
		"#_#_#",
	)
	lex := testhelpers.MustLexicon(t, "AAAAA")
	s := New(g, lex)
	across, d1, d3 := g.Slots()[0], g.Slots()[1], g.Slots()[2]

	// All domains the same size. The across slot crosses two others, the
	// downs only one, so it wins the tie.
	s.domains[across] = newWordSet([]string{"AAAAA"})
	s.domains[d1] = newWordSet([]string{"AAA"})
	s.domains[d3] = newWordSet([]string{"BBB"})
	is.Equal(s.selectSlot(Assignment{}), across)

	// With across gone the downs tie on both counts; the earlier slot in
	// scan order is picked.
	is.Equal(s.selectSlot(Assignment{across: "AAAAA"}), d1)
}

func TestOrderCandidatesLeastConstraining(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t,
		"___",
		"#_#",
		"#_#",
	)
	lex := testhelpers.MustLexicon(t, "CAT", "COG", "CUP", "DOG")
	s := New(g, lex)
	across, down := g.Slots()[0], g.Slots()[1]

	s.domains[across] = newWordSet([]string{"CAT", "COG", "CUP"})
	s.domains[down] = newWordSet([]string{"COG", "DOG"})

	// COG is also a candidate for the crossing slot, so choosing it here
	// is the most constraining; the others tie and stay alphabetical.
	is.Equal(s.orderCandidates(across, Assignment{}), []string{"CAT", "CUP", "COG"})

	// Once the crosser is assigned it no longer counts.
	is.Equal(s.orderCandidates(across, Assignment{down: "DOG"}),
		[]string{"CAT", "COG", "CUP"})
}

func TestAssignmentCopy(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustGrid(t, "___")
	slot := g.Slots()[0]
	a := Assignment{slot: "CAT"}
	b := a.Copy()
	b[slot] = "DOG"
	is.Equal(a[slot], "CAT")
	is.Equal(b[slot], "DOG")
}
