package lexicon

import (
	"errors"
	"strings"

	"github.com/domino14/crossfill/cache"
	"github.com/domino14/crossfill/config"
)

const CacheKeyPrefix = "lexicon:"

// CacheLoadFunc loads a word list from its cache key.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	path := strings.TrimPrefix(key, CacheKeyPrefix)
	return Load(path)
}

// Get fetches the word list at path through the global object cache.
func Get(cfg *config.Config, path string) (*Lexicon, error) {
	obj, err := cache.Load(cfg, CacheKeyPrefix+path, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	lex, ok := obj.(*Lexicon)
	if !ok {
		return nil, errors.New("cached object is not a word list")
	}
	return lex, nil
}

// Reload drops any cached copy of the list at path and reads it again.
func Reload(cfg *config.Config, path string) (*Lexicon, error) {
	cache.Evict(CacheKeyPrefix + path)
	return Get(cfg, path)
}
