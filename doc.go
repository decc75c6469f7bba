// Package rebloom provides a bloom filter sized from a target false positive
// rate, with reseeded hashing and exact bit accounting.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not – if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// # Sizing
//
// [New] takes the expected number of keys n, the number of hashes per key d
// and the target false positive rate P, and sizes the bit array with
// [BitsNeeded]:
//
//	phi = 1 - P^(1/d)
//	N   = floor(d / (1 - phi^(1/n)))
//
// phi is the fraction of bits that must still be zero once n keys are in the
// filter for the false positive rate to be P. The result is truncated, so a
// full filter may sit a hair above P.
//
// [NewWithEstimates] picks d for you with [OptimalHashes]:
//
//	// Filter for 100,000 keys with a 5% false positive rate (d = 4)
//	f, err := rebloom.NewWithEstimates(100_000, 0.05)
//
// # Probing
//
// Every key maps to d bit positions. The first position is hash(key, 0) mod N; each
// later position rehashes the key with the previous hash value as the seed.
// This gives d decorrelated positions from a single hash family. The hash
// function is pluggable through [Hasher]; [XXH3] is the default, with
// [Murmur3] and [XXHash] available as alternatives.
//
// # Bit Accounting
//
// The filter counts bits as they flip from 0 to 1, so [Filter.NumBitsSet] and
// [Filter.FalsePositiveRate] run in constant time and can be called on hot
// paths. The projected rate is
//
//	(1 - phi)^d   where phi = (N - bitsSet) / N
//
// which reflects the actual fill level rather than the number of keys added.
//
// # Thread Safety
//
// [Filter] is NOT thread-safe. Serialize all access with an external lock or
// confine each filter to a single goroutine.
//
// # Logging
//
// The package logs filter geometry at debug level when a filter is created.
// Logging is disabled until [UseLogger] is called.
package rebloom
