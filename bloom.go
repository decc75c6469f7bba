package rebloom

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Filter is a non-thread-safe bloom filter sized from a target false
// positive rate.
//
// Each key maps to k bit positions. The first position comes from hashing the
// key with seed 0, and every later one from hashing the key again with the
// previous hash value as the seed. The filter keeps an exact count of the
// bits it has set so that fill level queries never scan storage.
type Filter struct {
	bits      *bitset.BitSet // Bit storage, m bits long
	m         uint64         // Capacity in bits
	k         uint32         // Number of hashes per key
	set       uint64         // Number of 1 bits in bits
	count     uint64         // Number of inserts performed
	hasher    Hasher
	strHasher StringHasher // Same as hasher when it supports strings, else nil
}

// Option configures a Filter at construction.
type Option func(*Filter)

// WithHasher sets the hash function used to derive bit positions. A nil
// hasher leaves the default (XXH3) in place.
func WithHasher(h Hasher) Option {
	return func(f *Filter) {
		if h != nil {
			f.hasher = h
		}
	}
}

// New creates a bloom filter for numKeys keys using numHashes hashes per key,
// sized so the false positive rate stays at or below maxFalsePositive once
// numKeys distinct keys have been inserted.
//
// Invalid parameters are reported before any storage is allocated; see
// ValidateParams for the accepted ranges.
func New(numKeys uint64, numHashes uint32, maxFalsePositive float64, opts ...Option) (*Filter, error) {
	if err := ValidateParams(numKeys, numHashes, maxFalsePositive); err != nil {
		return nil, err
	}

	m := BitsNeeded(numKeys, numHashes, maxFalsePositive)
	if m == 0 || m > uint64(^uint(0)) {
		return nil, fmt.Errorf("%w: %d keys at rate %v", ErrCapacityOverflow, numKeys, maxFalsePositive)
	}

	f := &Filter{
		bits:   bitset.New(uint(m)),
		m:      m,
		k:      numHashes,
		hasher: XXH3{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.strHasher, _ = f.hasher.(StringHasher)

	log.Debugf("Sized filter for %d keys at rate %v: %d bits, k=%d",
		numKeys, maxFalsePositive, m, numHashes)

	return f, nil
}

// NewWithEstimates creates a bloom filter for numKeys keys and the given
// false positive rate, choosing the hash count with OptimalHashes.
func NewWithEstimates(numKeys uint64, maxFalsePositive float64, opts ...Option) (*Filter, error) {
	if err := ValidateParams(numKeys, 1, maxFalsePositive); err != nil {
		return nil, err
	}
	return New(numKeys, OptimalHashes(maxFalsePositive), maxFalsePositive, opts...)
}

// Insert adds key to the filter. It always succeeds; inserting more keys
// than the filter was sized for only raises the false positive rate.
func (f *Filter) Insert(key []byte) {
	f.insertBits(f.hasher.Hash(key, 0), func(h uint64) uint64 {
		return f.hasher.Hash(key, h)
	})
}

// InsertString adds a string key to the filter. It does not allocate when
// the hasher implements StringHasher.
func (f *Filter) InsertString(key string) {
	if f.strHasher == nil {
		f.Insert([]byte(key))
		return
	}
	f.insertBits(f.strHasher.HashString(key, 0), func(h uint64) uint64 {
		return f.strHasher.HashString(key, h)
	})
}

// Find reports whether key may have been inserted. A false result means the
// key was definitely never inserted; a true result may be a false positive.
func (f *Filter) Find(key []byte) bool {
	return f.testBits(f.hasher.Hash(key, 0), func(h uint64) uint64 {
		return f.hasher.Hash(key, h)
	})
}

// FindString is Find for string keys.
func (f *Filter) FindString(key string) bool {
	if f.strHasher == nil {
		return f.Find([]byte(key))
	}
	return f.testBits(f.strHasher.HashString(key, 0), func(h uint64) uint64 {
		return f.strHasher.HashString(key, h)
	})
}

// FindOrInsert inserts key and reports whether it may have been present
// before. It is equivalent to Find followed by Insert but hashes once.
func (f *Filter) FindOrInsert(key []byte) bool {
	return f.insertBits(f.hasher.Hash(key, 0), func(h uint64) uint64 {
		return f.hasher.Hash(key, h)
	})
}

// FindOrInsertString is FindOrInsert for string keys.
func (f *Filter) FindOrInsertString(key string) bool {
	if f.strHasher == nil {
		return f.FindOrInsert([]byte(key))
	}
	return f.insertBits(f.strHasher.HashString(key, 0), func(h uint64) uint64 {
		return f.strHasher.HashString(key, h)
	})
}

// insertBits sets the k bit positions starting at hash h, deriving each later
// hash with next, and reports whether every such bit was already set.
func (f *Filter) insertBits(h uint64, next func(uint64) uint64) bool {
	present := true
	for i := uint32(0); i < f.k; i++ {
		if f.setBit(h % f.m) {
			present = false
		}
		if i+1 < f.k {
			h = next(h)
		}
	}
	f.count++
	return present
}

// testBits checks the k bit positions starting at hash h and stops at the
// first zero bit.
func (f *Filter) testBits(h uint64, next func(uint64) uint64) bool {
	for i := uint32(0); i < f.k; i++ {
		if !f.bits.Test(uint(h % f.m)) {
			return false
		}
		if i+1 < f.k {
			h = next(h)
		}
	}
	return true
}

// setBit sets bit idx and reports whether it was previously zero. The set
// bit count changes only here, together with the storage write.
func (f *Filter) setBit(idx uint64) bool {
	i := uint(idx)
	if f.bits.Test(i) {
		return false
	}
	f.bits.Set(i)
	f.set++
	return true
}

// FalsePositiveRate projects the current false positive rate from the
// fraction of bits still zero. It is an estimate from the fill level, not a
// measurement over queries, and is 0 for an empty filter.
func (f *Filter) FalsePositiveRate() float64 {
	return ProjectedFalsePositiveRate(f.m, f.set, f.k)
}

// NumBitsSet returns the number of bits currently set. It runs in constant
// time.
func (f *Filter) NumBitsSet() uint64 {
	return f.set
}

// FillRatio returns the proportion of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.set) / float64(f.m)
}

// Cap returns the capacity of the filter in bits.
func (f *Filter) Cap() uint64 {
	return f.m
}

// K returns the number of hashes per key.
func (f *Filter) K() uint32 {
	return f.k
}

// Count returns the number of insert calls made, including repeats.
func (f *Filter) Count() uint64 {
	return f.count
}
