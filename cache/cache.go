// Package cache keeps large parsed objects, mainly word lists, in a
// process-wide map so a shell session can hop between puzzles without
// re-reading files from disk.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/config"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(cfg *config.Config, key string) (any, error)

var globalObjectCache *cache

func (c *cache) get(cfg *config.Config, key string, loader loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("cache-hit")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loader(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load fetches the object for key, reading it with loader on a miss.
func Load(cfg *config.Config, key string, loader loadFunc) (any, error) {
	if globalObjectCache == nil {
		globalObjectCache = &cache{objects: make(map[string]any)}
	}
	return globalObjectCache.get(cfg, key, loader)
}

// Evict drops key from the cache, forcing the next Load to re-read it.
// The shell does this when a word list may have changed on disk.
func Evict(key string) {
	if globalObjectCache == nil {
		return
	}
	globalObjectCache.Lock()
	defer globalObjectCache.Unlock()
	delete(globalObjectCache.objects, key)
}
