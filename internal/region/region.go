// Package region defines the locales records can be generated for and the
// corruption alphabet that belongs to each of them.
package region

import (
	"errors"
	"fmt"
	"strings"
)

// Region selects both the base-record locale and the corruption alphabet.
type Region string

const (
	DE Region = "de"
	PL Region = "pl"
	UZ Region = "uz"
)

// ErrUnknown is returned by Parse for codes outside the supported set.
var ErrUnknown = errors.New("unknown region")

const (
	latin    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	cyrillic = "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЫЭЮЯабвгдеёжзийклмнопрстуфхцчшщыэюя"
)

// Info describes a region for listings and the UI.
type Info struct {
	Code  Region `json:"code"`
	Label string `json:"label"`
}

var all = []Info{
	{Code: DE, Label: "Germany"},
	{Code: PL, Label: "Poland"},
	{Code: UZ, Label: "Uzbekistan"},
}

// All returns the supported regions in display order.
func All() []Info {
	out := make([]Info, len(all))
	copy(out, all)
	return out
}

// Parse validates a region code. Matching is case-insensitive and ignores
// surrounding whitespace.
func Parse(code string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(code)))
	switch r {
	case DE, PL, UZ:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, code)
}

// Alphabet returns the characters insertions are drawn from.
func (r Region) Alphabet() []rune {
	if r == UZ {
		return []rune(cyrillic)
	}
	return []rune(latin)
}

// Label returns the display name, or the raw code for unknown regions.
func (r Region) Label() string {
	for _, info := range all {
		if info.Code == r {
			return info.Label
		}
	}
	return string(r)
}

func (r Region) String() string { return string(r) }
