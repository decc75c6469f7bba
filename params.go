package rebloom

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxCapacityBits is the largest bit array New will allocate (32 TiB).
	MaxCapacityBits = uint64(1) << 48
	// MaxHashes is the upper clamp applied by OptimalHashes.
	MaxHashes = 32
)

var (
	// ErrInvalidKeyCount is returned when the expected key count is zero.
	ErrInvalidKeyCount = errors.New("rebloom: key count must be positive")

	// ErrInvalidHashCount is returned when the hash count is zero.
	ErrInvalidHashCount = errors.New("rebloom: hash count must be positive")

	// ErrInvalidFalsePositive is returned when the target false positive
	// rate is not strictly between 0 and 1.
	ErrInvalidFalsePositive = errors.New("rebloom: false positive rate must be in (0, 1)")

	// ErrCapacityOverflow is returned when the planned bit array does not
	// fit in MaxCapacityBits.
	ErrCapacityOverflow = errors.New("rebloom: required capacity overflows")
)

// ValidateParams checks the construction parameters of a filter. BitsNeeded
// is only defined for parameters that pass this check.
func ValidateParams(numKeys uint64, numHashes uint32, maxFalsePositive float64) error {
	if numKeys == 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidKeyCount, numKeys)
	}
	if numHashes == 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHashCount, numHashes)
	}
	// NaN fails both comparisons, so test for the valid range.
	if !(maxFalsePositive > 0 && maxFalsePositive < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidFalsePositive, maxFalsePositive)
	}
	return nil
}

// BitsNeeded returns the number of bits a filter needs to hold numKeys keys
// with numHashes hashes per key while keeping the false positive rate at or
// below maxFalsePositive under a uniform hashing model.
//
// With d = numHashes, P = maxFalsePositive and n = numKeys:
//
//	phi = 1 - P^(1/d)          fraction of bits that must stay zero
//	N   = d / (1 - phi^(1/n))  bits needed for n keys to leave phi zero
//
// The result is N truncated toward zero, so the realized rate can sit very
// slightly above P. Parameters must satisfy ValidateParams. BitsNeeded
// returns 0 if the result is not representable or exceeds MaxCapacityBits.
func BitsNeeded(numKeys uint64, numHashes uint32, maxFalsePositive float64) uint64 {
	n := float64(numKeys)
	d := float64(numHashes)
	p := maxFalsePositive

	phi := 1 - math.Pow(p, 1/d)
	bits := d / (1 - math.Pow(phi, 1/n))

	if math.IsNaN(bits) || math.IsInf(bits, 0) || bits < 1 || bits > float64(MaxCapacityBits) {
		return 0
	}
	return uint64(bits)
}

// OptimalHashes returns the hash count that minimises the bit array size
// for the given false positive rate: round(log2(1/P)), clamped to
// [1, MaxHashes]. Out of range rates are clamped the same way.
func OptimalHashes(maxFalsePositive float64) uint32 {
	if !(maxFalsePositive > 0) {
		return MaxHashes
	}
	if maxFalsePositive >= 1 {
		return 1
	}

	k := math.Round(-math.Log2(maxFalsePositive))
	k = max(k, 1)
	k = min(k, MaxHashes)
	return uint32(k)
}

// ProjectedFalsePositiveRate estimates the false positive rate of a filter
// from its fill level.
// Formula: (1 - phi)^k where phi = (m - set) / m
func ProjectedFalsePositiveRate(capacityBits, bitsSet uint64, numHashes uint32) float64 {
	if capacityBits == 0 {
		return 0
	}

	phi := float64(capacityBits-min(bitsSet, capacityBits)) / float64(capacityBits)
	return math.Pow(1-phi, float64(numHashes))
}
