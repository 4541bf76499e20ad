// Package corrupt injects character-level typos into strings.
//
// A corruption pass applies floor(intensity) random mutations (delete, insert
// or swap of adjacent characters) and, with probability equal to the
// fractional part of the intensity, one more. Output length is kept within
// [max(1, floor(0.8*L)), 1.2*L] of the original length L.
//
// All functions operate on runes so multi-byte letters (Cyrillic, Polish
// diacritics) are never split. Sequences are treated as values: functions
// return new slices and never modify their input.
package corrupt

import (
	"math"
	"math/rand"
)

// Rand is the randomness a corruption pass consumes.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) Intn(n int) int   { return rand.Intn(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Global returns the process-wide random source. It is safe for concurrent
// use and is not reproducible between calls.
func Global() Rand { return globalRand{} }

// Mutation is a single character-level edit.
type Mutation int

const (
	Delete Mutation = iota
	Insert
	Swap
)

func (m Mutation) String() string {
	switch m {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Swap:
		return "swap"
	default:
		return "unknown"
	}
}

// MaxMutations caps the guaranteed mutation count of a single pass.
const MaxMutations = 1 << 16

// Mutate applies m at index. r is the rune inserted by Insert and is ignored
// otherwise. Delete is a no-op on sequences of length <= 1, Swap is a no-op
// at the last index. Out-of-range indexes leave seq unchanged.
// The returned slice never shares its backing array with seq when it differs.
func Mutate(seq []rune, m Mutation, index int, r rune) []rune {
	switch m {
	case Delete:
		if len(seq) <= 1 || index < 0 || index >= len(seq) {
			return seq
		}
		out := make([]rune, 0, len(seq)-1)
		out = append(out, seq[:index]...)
		return append(out, seq[index+1:]...)

	case Insert:
		if index < 0 || index > len(seq) {
			return seq
		}
		out := make([]rune, 0, len(seq)+1)
		out = append(out, seq[:index]...)
		out = append(out, r)
		return append(out, seq[index:]...)

	case Swap:
		if index < 0 || index >= len(seq)-1 {
			return seq
		}
		out := make([]rune, len(seq))
		copy(out, seq)
		out[index], out[index+1] = out[index+1], out[index]
		return out
	}
	return seq
}

// ApplyRandomError applies one uniformly chosen mutation at a uniformly chosen
// position. Insertions draw their rune uniformly from alphabet; with an empty
// alphabet an insertion is a no-op.
func ApplyRandomError(seq, alphabet []rune, rng Rand) []rune {
	index := 0
	if len(seq) > 0 {
		index = rng.Intn(len(seq))
	}

	m := Mutation(rng.Intn(3))
	if m != Insert {
		return Mutate(seq, m, index, 0)
	}
	if len(alphabet) == 0 {
		return seq
	}
	return Mutate(seq, Insert, index, alphabet[rng.Intn(len(alphabet))])
}

// Corrupt returns input with intensity-driven random mutations applied.
//
// An intensity of 0 returns input unchanged. Negative and NaN intensities
// behave like 0. Empty input is returned as is.
func Corrupt(input string, intensity float64, alphabet []rune, rng Rand) string {
	original := []rune(input)
	n := len(original)
	if n == 0 || math.IsNaN(intensity) || intensity <= 0 {
		return input
	}

	out := original
	for i := 0; i < guaranteedCount(intensity); i++ {
		next := ApplyRandomError(out, alphabet, rng)
		if exceedsCap(len(next), n) {
			// The overflowing mutation is dropped so the cap holds.
			break
		}
		out = next
	}

	if frac := math.Mod(intensity, 1); frac > 0 && rng.Float64() < frac {
		out = ApplyRandomError(out, alphabet, rng)
		if exceedsCap(len(out), n) {
			out = out[:n:n]
		}
	}

	if len(out) < lowerBound(n) {
		padded := make([]rune, 0, n)
		padded = append(padded, out...)
		out = append(padded, original[len(out):]...)
	}

	return string(out)
}

// Injector bundles an alphabet and intensity for corrupting many fields.
type Injector struct {
	Alphabet  []rune
	Intensity float64
}

// Corrupt applies the injector's settings to s.
func (in Injector) Corrupt(s string, rng Rand) string {
	return Corrupt(s, in.Intensity, in.Alphabet, rng)
}

func guaranteedCount(intensity float64) int {
	f := math.Floor(intensity)
	if f > MaxMutations {
		return MaxMutations
	}
	return int(f)
}

// exceedsCap reports length > 1.2*n using exact integer math.
func exceedsCap(length, n int) bool {
	return 5*length > 6*n
}

// lowerBound is max(1, floor(0.8*n)).
func lowerBound(n int) int {
	if lb := 4 * n / 5; lb > 1 {
		return lb
	}
	return 1
}
