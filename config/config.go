// Package config holds the runtime knobs for crossfill. Settings come
// from flags, CROSSFILL_ environment variables, or defaults, in that
// order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigDataPath        = "data-path"
	ConfigDefaultWordList = "default-wordlist"
	ConfigThreads         = "threads"
	ConfigRandomize       = "randomize"
	ConfigSeed            = "seed"
	ConfigSolveLog        = "solve-log"
	ConfigArchivePath     = "archive-path"
	ConfigCPUProfile      = "cpu-profile"
	ConfigMemProfile      = "mem-profile"
)

type Config struct {
	v *viper.Viper
}

// DefaultConfig returns a config holding only the defaults. Tests use
// this; the binaries call Load instead.
func DefaultConfig() Config {
	c := Config{}
	c.init()
	return c
}

func (c *Config) init() {
	c.v = viper.New()
	c.v.SetDefault(ConfigDebug, false)
	c.v.SetDefault(ConfigDataPath, "./data")
	c.v.SetDefault(ConfigDefaultWordList, "words.txt")
	c.v.SetDefault(ConfigThreads, 1)
	c.v.SetDefault(ConfigRandomize, false)
	c.v.SetDefault(ConfigSeed, uint64(0))
	c.v.SetDefault(ConfigSolveLog, "")
	c.v.SetDefault(ConfigArchivePath, "")
	c.v.SetDefault(ConfigCPUProfile, "")
	c.v.SetDefault(ConfigMemProfile, "")
	c.v.SetEnvPrefix("crossfill")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
}

// Load parses command-line args into the config.
func (c *Config) Load(args []string) error {
	c.init()
	fs := pflag.NewFlagSet("crossfill", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigDataPath, "./data", "directory holding structure and word list files")
	fs.String(ConfigDefaultWordList, "words.txt", "word list to load at startup, relative to data-path unless absolute")
	fs.Int(ConfigThreads, 1, "worker count for filling; 1 searches sequentially")
	fs.Bool(ConfigRandomize, false, "shuffle candidate words before the heuristic ordering")
	fs.Uint64(ConfigSeed, 0, "seed for randomized fills; 0 seeds from entropy")
	fs.String(ConfigSolveLog, "", "write a YAML log of search decisions to this file")
	fs.String(ConfigArchivePath, "", "sqlite file to archive completed fills into")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.v.BindPFlags(fs)
}

func (c *Config) GetString(key string) string { return c.v.GetString(key) }
func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetUint64(key string) uint64 { return c.v.GetUint64(key) }

// Set overrides a single setting, as the shell's set command does.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// SanitizedSettings returns the settings for display and logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.v.AllSettings()
}

// AdjustRelativePaths anchors the relative data path at the executable's
// directory, so the binaries work no matter where they are invoked from.
func (c *Config) AdjustRelativePaths(basePath string) {
	dataPath := c.GetString(ConfigDataPath)
	if !filepath.IsAbs(dataPath) {
		c.v.Set(ConfigDataPath, filepath.Clean(filepath.Join(basePath, dataPath)))
	}
}

// WordListPath resolves the default word list against the data path.
func (c *Config) WordListPath() string {
	wl := c.GetString(ConfigDefaultWordList)
	if filepath.IsAbs(wl) {
		return wl
	}
	return filepath.Join(c.GetString(ConfigDataPath), wl)
}

// FindBasePath walks up from dir looking for a data directory, and
// returns dir unchanged if there is none. Useful when running from a
// build subdirectory of a source checkout.
func FindBasePath(dir string) string {
	for d := dir; ; {
		if info, err := os.Stat(filepath.Join(d, "data")); err == nil && info.IsDir() {
			return d
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}
