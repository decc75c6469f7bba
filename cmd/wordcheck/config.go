package main

import (
	"fmt"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
	"github.com/jcalabro/rebloom"
	"github.com/jessevdk/go-flags"
)

const (
	defaultWordList   = "wordlist.txt"
	defaultKeys       = 100000
	defaultHashes     = 4
	defaultFPRate     = 0.05
	defaultHasher     = "xxh3"
	defaultDebugLevel = "info"
)

// config holds the command line options for a word list check.
type config struct {
	WordList   string  `long:"wordlist" short:"w" description:"Path to a newline-delimited word list"`
	Keys       uint64  `long:"keys" short:"n" description:"Number of words to insert; the next as many words are used as negative lookups"`
	Hashes     uint32  `long:"hashes" short:"k" description:"Number of hashes per key"`
	FPRate     float64 `long:"fprate" short:"p" description:"Target false positive rate"`
	Hasher     string  `long:"hasher" description:"Hash function used to derive bit positions" choice:"xxh3" choice:"murmur3" choice:"xxhash"`
	DebugLevel string  `long:"debuglevel" short:"d" description:"Logging level {trace, debug, info, warn, error, critical}"`

	level btclogv1.Level
}

func defaultConfig() config {
	return config{
		WordList:   defaultWordList,
		Keys:       defaultKeys,
		Hashes:     defaultHashes,
		FPRate:     defaultFPRate,
		Hasher:     defaultHasher,
		DebugLevel: defaultDebugLevel,
	}
}

// loadConfig parses args over the defaults and validates the result.
func loadConfig(args []string) (*config, error) {
	cfg := defaultConfig()

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *config) validate() error {
	if c.WordList == "" {
		return fmt.Errorf("a word list path is required")
	}

	if err := rebloom.ValidateParams(c.Keys, c.Hashes, c.FPRate); err != nil {
		return fmt.Errorf("invalid filter parameters: %w", err)
	}

	level, ok := btclog.LevelFromString(c.DebugLevel)
	if !ok {
		return fmt.Errorf("invalid debug level %q", c.DebugLevel)
	}
	c.level = level

	return nil
}

// hasher returns the rebloom.Hasher selected by the --hasher option.
func (c *config) hasher() (rebloom.Hasher, error) {
	switch c.Hasher {
	case "xxh3", "":
		return rebloom.XXH3{}, nil
	case "murmur3":
		return rebloom.Murmur3{}, nil
	case "xxhash":
		return rebloom.NewXXHash(), nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", c.Hasher)
	}
}
