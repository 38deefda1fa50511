package testhelpers

import (
	"strings"
	"testing"

	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/lexicon"
)

var DefaultConfig = config.DefaultConfig()

// MustGrid parses a structure from its lines, failing the test on error.
func MustGrid(t testing.TB, lines ...string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(lines)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// MustLexicon builds a vocabulary from literal words.
func MustLexicon(t testing.TB, words ...string) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.LoadReader("test", strings.NewReader(strings.Join(words, "\n")), "")
	if err != nil {
		t.Fatal(err)
	}
	return lex
}
