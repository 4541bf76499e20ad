// Package seed turns free-form seed text into the integer seeds used by the
// record source and the corruption engine.
//
// Derive is the multiply-by-31 rolling hash over UTF-16 code units with
// 32-bit signed wraparound, so the same text always yields the same integer
// (and matches the values produced by earlier versions of this service).
package seed

import "unicode/utf16"

// Derive folds text into a signed 32-bit seed.
//
// For each UTF-16 code unit cu: h = cu + ((h << 5) - h). Overflow wraps.
// The empty string yields 0.
func Derive(text string) int32 {
	var h int32
	for _, cu := range utf16.Encode([]rune(text)) {
		h = int32(cu) + ((h << 5) - h)
	}
	return h
}

// Sub mixes a base seed with integer parts into an independent stream seed.
// Distinct part tuples give unrelated streams; the same tuple is stable.
func Sub(base int32, parts ...int) int64 {
	x := uint64(uint32(base))
	x = mix(x)
	for _, p := range parts {
		x = mix(x ^ uint64(int64(p)))
	}
	return int64(x)
}

// mix is the splitmix64 step.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
