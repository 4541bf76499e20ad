package corrupt

import (
	"math/rand"
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var latin = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

// seqRand replays fixed draws so mutation choices are predictable.
type seqRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *seqRand) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.ints, "seqRand ran out of ints")
	v := s.ints[0]
	s.ints = s.ints[1:]
	require.Less(s.t, v, n, "scripted int out of range")
	return v
}

func (s *seqRand) Float64() float64 {
	s.t.Helper()
	require.NotEmpty(s.t, s.floats, "seqRand ran out of floats")
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestMutate(t *testing.T) {
	seq := []rune("abcd")

	tests := []struct {
		name  string
		seq   []rune
		m     Mutation
		index int
		r     rune
		want  string
	}{
		{"delete middle", seq, Delete, 1, 0, "acd"},
		{"delete last", seq, Delete, 3, 0, "abc"},
		{"delete single char is no-op", []rune("x"), Delete, 0, 0, "x"},
		{"insert front", seq, Insert, 0, 'Z', "Zabcd"},
		{"insert before index", seq, Insert, 2, 'Z', "abZcd"},
		{"insert into empty", nil, Insert, 0, 'Z', "Z"},
		{"swap adjacent", seq, Swap, 1, 0, "acbd"},
		{"swap at last index is no-op", seq, Swap, 3, 0, "abcd"},
		{"out of range delete is no-op", seq, Delete, 9, 0, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Mutate(tt.seq, tt.m, tt.index, tt.r)))
		})
	}

	assert.Equal(t, "abcd", string(seq), "Mutate must not modify its input")
}

func TestApplyRandomError_DrawOrder(t *testing.T) {
	rng := &seqRand{t: t, ints: []int{2, int(Insert), 25}}
	got := ApplyRandomError([]rune("abcd"), latin, rng)
	assert.Equal(t, "abZcd", string(got))

	rng = &seqRand{t: t, ints: []int{0, int(Swap)}}
	got = ApplyRandomError([]rune("abcd"), latin, rng)
	assert.Equal(t, "bacd", string(got))
}

func TestApplyRandomError_EmptyAlphabet(t *testing.T) {
	rng := &seqRand{t: t, ints: []int{1, int(Insert)}}
	got := ApplyRandomError([]rune("abc"), nil, rng)
	assert.Equal(t, "abc", string(got))
}

func TestApplyRandomError_InsertedRunesFromAlphabet(t *testing.T) {
	alphabet := []rune("ЖЯЩ")
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		before := []rune("hello")
		after := ApplyRandomError(before, alphabet, rng)
		if len(after) != len(before)+1 {
			continue
		}
		for _, r := range after {
			if !slices.Contains(before, r) {
				assert.Contains(t, alphabet, r)
			}
		}
	}
}

func TestCorrupt_ZeroIntensityIsIdentity(t *testing.T) {
	inputs := []string{"", "a", "Max Mustermann", "ул. Навои, д. 12", "+48 512 345 678"}
	for _, in := range inputs {
		for i := 0; i < 20; i++ {
			assert.Equal(t, in, Corrupt(in, 0, latin, Global()))
		}
	}
}

func TestCorrupt_NegativeAndNaNBehaveLikeZero(t *testing.T) {
	rng := &seqRand{t: t}
	assert.Equal(t, "Anna", Corrupt("Anna", -3.5, latin, rng))
}

func TestCorrupt_LengthBounds(t *testing.T) {
	inputs := []string{
		"x",
		"ab",
		"Jan Kowalski",
		"Hauptstraße 17",
		"Шахзод Юсупов",
		"0151 23456789",
		"ul. Świętokrzyska 112/4",
	}

	for seedVal := int64(0); seedVal < 40; seedVal++ {
		rng := rand.New(rand.NewSource(seedVal))
		for _, in := range inputs {
			n := utf8.RuneCountInString(in)
			lo := max(1, 4*n/5)
			hi := (6*n + 4) / 5 // ceil(1.2n)

			for intensity := 0.0; intensity <= 5; intensity += 0.25 {
				got := Corrupt(in, intensity, latin, rng)
				gotLen := utf8.RuneCountInString(got)
				if gotLen < lo || gotLen > hi {
					t.Fatalf("Corrupt(%q, %v) length %d outside [%d, %d]: %q",
						in, intensity, gotLen, lo, hi, got)
				}
			}
		}
	}
}

func TestCorrupt_GuaranteedLoopStopsAtCap(t *testing.T) {
	// The second insert would take "abcde" to 7 runes (> 6) and is dropped.
	rng := &seqRand{t: t, ints: []int{
		0, int(Insert), 23, // X
		0, int(Insert), 24, // Y
	}}
	got := Corrupt("abcde", 3, latin, rng)
	assert.Equal(t, "Xabcde", got)
	assert.Empty(t, rng.ints, "loop should stop after the overflowing mutation")
}

func TestCorrupt_FractionalOverflowClips(t *testing.T) {
	rng := &seqRand{
		t: t,
		ints: []int{
			0, int(Insert), 23, // guaranteed: Xabcde
			0, int(Insert), 24, // extra: YXabcde, over cap
		},
		floats: []float64{0.1},
	}
	got := Corrupt("abcde", 1.5, latin, rng)
	assert.Equal(t, "YXabc", got)
}

func TestCorrupt_FractionalNotTriggered(t *testing.T) {
	rng := &seqRand{t: t, floats: []float64{0.9}}
	assert.Equal(t, "abcde", Corrupt("abcde", 0.5, latin, rng))
}

func TestCorrupt_PadsWithOriginalTail(t *testing.T) {
	ints := make([]int, 0, 10)
	for i := 0; i < 5; i++ {
		ints = append(ints, 0, int(Delete))
	}
	rng := &seqRand{t: t, ints: ints}

	got := Corrupt("abcdefghij", 5, latin, rng)
	assert.Equal(t, "fghijfghij", got)
}

func TestCorrupt_PreservesMultiByteRunes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	alphabet := []rune("АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЫЭЮЯабвгдеёжзийклмнопрстуфхцчшщыэюя")

	for i := 0; i < 200; i++ {
		got := Corrupt("Гульнора Каримова", 3.5, alphabet, rng)
		require.True(t, utf8.ValidString(got), "invalid UTF-8: %q", got)
	}
}

func TestInjector(t *testing.T) {
	in := Injector{Alphabet: latin, Intensity: 0}
	assert.Equal(t, "Berlin", in.Corrupt("Berlin", Global()))
}

func TestGuaranteedCount(t *testing.T) {
	assert.Equal(t, 0, guaranteedCount(0.75))
	assert.Equal(t, 3, guaranteedCount(3.2))
	assert.Equal(t, MaxMutations, guaranteedCount(1e18))
}
