// Package alphabet maps the distinct symbols of a pattern to dense column indices.
// Lookups use a 256 entry array, no maps on the hot path.
package alphabet // import "github.com/ldemailly/dfamatch/alphabet"

import (
	"maps"
	"slices"

	"fortio.org/log"
	"fortio.org/safecast"
	"fortio.org/sets"
)

// Absent is the index of a byte that isn't part of the alphabet.
const Absent = -1

// Alphabet is the immutable set of distinct bytes of a pattern.
type Alphabet struct {
	set     sets.Set[byte]
	symbols []byte     // sorted ascending, symbols[index[c]] == c.
	index   [256]int16 // Absent or position in symbols.
}

// New returns the alphabet of the distinct bytes in pattern.
func New(pattern string) *Alphabet {
	a := &Alphabet{set: sets.New[byte]()}
	for i := range len(pattern) {
		a.set.Add(pattern[i])
	}
	a.symbols = slices.Sorted(maps.Keys(a.set))
	for i := range a.index {
		a.index[i] = Absent
	}
	for i, c := range a.symbols {
		a.index[c] = safecast.MustConv[int16](i)
	}
	log.Debugf("alphabet of %q: %q (%d symbols)", pattern, a.symbols, len(a.symbols))
	return a
}

// Len is the number of distinct symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Has reports whether c occurs in the pattern.
func (a *Alphabet) Has(c byte) bool {
	return a.set.Has(c)
}

// Index returns the dense column of c, or Absent.
func (a *Alphabet) Index(c byte) int {
	return int(a.index[c])
}

// Symbol is the inverse of Index.
func (a *Alphabet) Symbol(i int) byte {
	return a.symbols[i]
}

// Symbols returns a copy of the symbols in ascending order.
func (a *Alphabet) Symbols() []byte {
	return slices.Clone(a.symbols)
}

// Set returns a copy of the underlying set.
func (a *Alphabet) Set() sets.Set[byte] {
	return maps.Clone(a.set)
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}
