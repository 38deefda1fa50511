package lexicon

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crossfill/config"
)

func TestLoadReader(t *testing.T) {
	is := is.New(t)
	in := "cat\ndog\n\ntie\nCAT\nbath 42\nact\n"
	lex, err := LoadReader("small", strings.NewReader(in), "")
	is.NoErr(err)
	is.Equal(lex.Name(), "small")
	is.Equal(lex.Size(), 5)
	is.Equal(lex.Words(), []string{"ACT", "BATH", "CAT", "DOG", "TIE"})
	is.Equal(lex.OfLength(3), []string{"ACT", "CAT", "DOG", "TIE"})
	is.Equal(lex.OfLength(4), []string{"BATH"})
	is.Equal(len(lex.OfLength(9)), 0)
	is.True(lex.Has("cat"))
	is.True(lex.Has("BATH"))
	is.True(!lex.Has("xyzzy"))
}

func TestLoadReaderUnknownEncoding(t *testing.T) {
	is := is.New(t)
	_, err := LoadReader("x", strings.NewReader("cat\n"), "utf-16")
	is.True(err != nil)
}

func TestLoadLatin1(t *testing.T) {
	is := is.New(t)
	// 0xC9 is É in ISO 8859-1.
	raw := []byte{0xC9, 'T', 'A', 'T', '\n', 'C', 'A', 'T', '\n'}
	lex, err := LoadReader("accents", bytes.NewReader(raw), EncodingLatin1)
	is.NoErr(err)
	is.Equal(lex.Size(), 2)
	is.True(lex.Has("ÉTAT"))
	// Length is counted in runes, not bytes.
	is.Equal(lex.OfLength(4), []string{"ÉTAT"})
	is.Equal(lex.OfLength(3), []string{"CAT"})
}

func TestFingerprint(t *testing.T) {
	is := is.New(t)
	a, err := LoadReader("a", strings.NewReader("cat\ndog\ntie\n"), "")
	is.NoErr(err)
	b, err := LoadReader("b", strings.NewReader("TIE\nCat\ndog\ncat\n"), "")
	is.NoErr(err)
	is.Equal(a.Fingerprint(), b.Fingerprint())
	is.Equal(a.FingerprintHex(), b.FingerprintHex())

	c, err := LoadReader("c", strings.NewReader("cat\ndog\ntie\nact\n"), "")
	is.NoErr(err)
	is.True(a.Fingerprint() != c.Fingerprint())
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	lex, err := Load("testdata/small.txt")
	is.NoErr(err)
	is.Equal(lex.Name(), "small")
	is.Equal(lex.Size(), 5)

	_, err = Load("testdata/no-such-list.txt")
	is.True(err != nil)
}

func TestGetCaches(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	first, err := Get(&cfg, "testdata/small.txt")
	is.NoErr(err)
	second, err := Get(&cfg, "testdata/small.txt")
	is.NoErr(err)
	is.True(first == second)

	reloaded, err := Reload(&cfg, "testdata/small.txt")
	is.NoErr(err)
	is.Equal(reloaded.Words(), first.Words())
}
