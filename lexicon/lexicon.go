// Package lexicon loads the word lists that fills draw from. A list is a
// plain text file with one word per line; words are uppercased and
// deduplicated on load.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EncodingLatin1 selects ISO 8859-1 decoding for lists that predate
// UTF-8. Several widely circulated construction lists still use it.
const EncodingLatin1 = "latin1"

// A Lexicon is an immutable, deduplicated vocabulary.
type Lexicon struct {
	name        string
	words       []string
	wordSet     map[string]struct{}
	byLength    map[int][]string
	fingerprint uint64
}

// Load reads the UTF-8 word list at path. The lexicon is named after the
// file, minus its extension.
func Load(path string) (*Lexicon, error) {
	return LoadFile(path, "")
}

// LoadFile reads the word list at path with the given encoding. An empty
// encoding means UTF-8.
func LoadFile(path string, encoding string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadReader(name, file, encoding)
}

// LoadReader reads a word list from r. Each line's first field is taken
// as a word; blank lines are skipped. Annotations after the word, like
// frequency counts, are ignored, so common dictionary formats load as-is.
func LoadReader(name string, r io.Reader, encoding string) (*Lexicon, error) {
	switch encoding {
	case "":
	case EncodingLatin1:
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding %v", encoding)
	}

	wordSet := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		wordSet[strings.ToUpper(fields[0])] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(wordSet) == 0 {
		log.Warn().Str("lexicon", name).Msg("word list is empty")
	}

	words := make([]string, 0, len(wordSet))
	for w := range wordSet {
		words = append(words, w)
	}
	sort.Strings(words)

	byLength := map[int][]string{}
	for _, w := range words {
		l := len([]rune(w))
		byLength[l] = append(byLength[l], w)
	}

	lex := &Lexicon{
		name:        name,
		words:       words,
		wordSet:     wordSet,
		byLength:    byLength,
		fingerprint: xxhash.Sum64String(strings.Join(words, "\n")),
	}
	log.Debug().Str("lexicon", name).Int("words", len(words)).
		Str("fingerprint", lex.FingerprintHex()).Msg("loaded-lexicon")
	return lex, nil
}

func (l *Lexicon) Name() string { return l.name }
func (l *Lexicon) Size() int    { return len(l.words) }

// Words returns the vocabulary in sorted order.
func (l *Lexicon) Words() []string {
	return l.words
}

// OfLength returns the sorted words of exactly n letters.
func (l *Lexicon) OfLength(n int) []string {
	return l.byLength[n]
}

// Has reports whether w, uppercased, is in the lexicon.
func (l *Lexicon) Has(w string) bool {
	_, ok := l.wordSet[strings.ToUpper(w)]
	return ok
}

// Fingerprint is a content hash of the sorted vocabulary. Two lists with
// the same words in any order hash the same.
func (l *Lexicon) Fingerprint() uint64 {
	return l.fingerprint
}

// FingerprintHex is the fingerprint as fixed-width hex, the form stored
// in fill archives.
func (l *Lexicon) FingerprintHex() string {
	return fmt.Sprintf("%016x", l.fingerprint)
}
