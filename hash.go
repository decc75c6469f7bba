package rebloom

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hasher derives bit positions for a key. Hash must be deterministic for a
// given (key, seed) pair. The filter calls it first with seed 0 and then
// feeds each result back in as the next seed.
type Hasher interface {
	Hash(key []byte, seed uint64) uint64
}

// StringHasher is implemented by hashers that can hash a string without
// converting it to a byte slice first.
type StringHasher interface {
	HashString(key string, seed uint64) uint64
}

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc func(key []byte, seed uint64) uint64

// Hash calls fn(key, seed).
func (fn HasherFunc) Hash(key []byte, seed uint64) uint64 {
	return fn(key, seed)
}

// XXH3 hashes with seeded xxh3. It is the default hasher and is safe for
// concurrent use.
type XXH3 struct{}

// Hash returns the xxh3 hash of key under seed.
func (XXH3) Hash(key []byte, seed uint64) uint64 {
	return xxh3.HashSeed(key, seed)
}

// HashString returns the xxh3 hash of key under seed without allocating.
func (XXH3) HashString(key string, seed uint64) uint64 {
	return xxh3.HashStringSeed(key, seed)
}

// Murmur3 hashes with seeded 64-bit murmur3. The 64-bit seed is folded to
// the 32 bits murmur3 accepts.
type Murmur3 struct{}

// Hash returns the murmur3 hash of key under seed.
func (Murmur3) Hash(key []byte, seed uint64) uint64 {
	return murmur3.Sum64WithSeed(key, foldSeed(seed))
}

// foldSeed mixes both halves of a 64-bit seed into 32 bits.
func foldSeed(seed uint64) uint32 {
	return uint32(seed ^ (seed >> 32))
}

// XXHash hashes with seeded xxhash64. It reuses one digest, so an XXHash
// must not be shared between goroutines.
type XXHash struct {
	d *xxhash.Digest
}

// NewXXHash returns an XXHash ready for use.
func NewXXHash() *XXHash {
	return &XXHash{d: xxhash.NewWithSeed(0)}
}

// Hash returns the xxhash64 of key under seed.
func (x *XXHash) Hash(key []byte, seed uint64) uint64 {
	x.d.ResetWithSeed(seed)
	_, _ = x.d.Write(key)
	return x.d.Sum64()
}

// HashString returns the xxhash64 of key under seed without allocating.
func (x *XXHash) HashString(key string, seed uint64) uint64 {
	x.d.ResetWithSeed(seed)
	_, _ = x.d.WriteString(key)
	return x.d.Sum64()
}
