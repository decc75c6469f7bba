package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/jcalabro/rebloom"
	"github.com/jessevdk/go-flags"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		// go-flags has already printed the usage for --help.
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := btclog.NewSLogger(btclog.NewDefaultHandler(os.Stdout))
	log.SetLevel(cfg.level)
	rebloom.UseLogger(log)

	if err := run(cfg, log); err != nil {
		log.Errorf("Word list check failed: %v", err)
		os.Exit(1)
	}
}

// run checks the configured word list and logs the results.
func run(cfg *config, log btclog.Logger) error {
	file, err := os.Open(cfg.WordList)
	if err != nil {
		return fmt.Errorf("unable to open word list: %w", err)
	}
	defer file.Close()

	log.Infof("Checking %d words from %s (k=%d, target rate %v, hasher %s)",
		cfg.Keys, cfg.WordList, cfg.Hashes, cfg.FPRate, cfg.Hasher)

	rep, err := check(cfg, file)
	if err != nil {
		return err
	}

	log.Infof("Filter uses %d bits, %d set", rep.Bits, rep.BitsSet)
	log.Infof("Projected false positive rate: %v", rep.Projected)
	log.Infof("Missing %d", rep.Missing)
	log.Infof("Actual false positive rate: %v", rep.Actual)

	if rep.Missing > 0 {
		return fmt.Errorf("%d inserted words were not found", rep.Missing)
	}
	return nil
}
