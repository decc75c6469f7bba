package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jcalabro/rebloom"
)

// report is the outcome of a word list check.
type report struct {
	// Bits is the capacity of the filter in bits.
	Bits uint64

	// BitsSet is the number of bits set after all inserts.
	BitsSet uint64

	// Projected is the false positive rate projected from the fill level.
	Projected float64

	// Missing counts inserted words the filter failed to find. Anything
	// other than zero is a bug.
	Missing uint64

	// FalsePositives counts words from the second half of the list that
	// the filter claimed to contain.
	FalsePositives uint64

	// Actual is FalsePositives as a fraction of the lookups made.
	Actual float64
}

// maxPrealloc caps the capacity readWords reserves before reading.
const maxPrealloc = 1 << 16

// readWords reads up to n lines from r.
func readWords(r io.Reader, n uint64) ([]string, error) {
	words := make([]string, 0, min(n, maxPrealloc))
	scanner := bufio.NewScanner(r)
	for uint64(len(words)) < n && scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read word list: %w", err)
	}
	return words, nil
}

// check inserts the first cfg.Keys words of r into a new filter, verifies
// they are all found, and measures the false positive rate over the next
// cfg.Keys words.
func check(cfg *config, r io.Reader) (*report, error) {
	hasher, err := cfg.hasher()
	if err != nil {
		return nil, err
	}

	// Sizing first rejects key counts no filter can hold, which also keeps
	// 2*cfg.Keys from wrapping.
	f, err := rebloom.New(
		cfg.Keys, cfg.Hashes, cfg.FPRate, rebloom.WithHasher(hasher),
	)
	if err != nil {
		return nil, err
	}

	words, err := readWords(r, 2*cfg.Keys)
	if err != nil {
		return nil, err
	}
	if uint64(len(words)) < 2*cfg.Keys {
		return nil, fmt.Errorf("word list has %d words, need %d",
			len(words), 2*cfg.Keys)
	}
	inserted, unseen := words[:cfg.Keys], words[cfg.Keys:]

	for _, w := range inserted {
		f.InsertString(w)
	}

	rep := &report{
		Bits:      f.Cap(),
		BitsSet:   f.NumBitsSet(),
		Projected: f.FalsePositiveRate(),
	}

	for _, w := range inserted {
		if !f.FindString(w) {
			rep.Missing++
		}
	}

	for _, w := range unseen {
		if f.FindString(w) {
			rep.FalsePositives++
		}
	}
	rep.Actual = float64(rep.FalsePositives) / float64(len(unseen))

	return rep, nil
}
