// Package dfa builds the string matching automaton of a pattern and scans texts with it.
//
// State i means the longest suffix of the input read so far that is also a prefix of
// the pattern has length i. State len(pattern) is the only accepting state.
package dfa // import "github.com/ldemailly/dfamatch/dfa"

import (
	"iter"

	"fortio.org/log"
	"fortio.org/safecast"
	"github.com/ldemailly/dfamatch/alphabet"
	"github.com/ldemailly/dfamatch/trie"
)

// State is the length of the pattern prefix matched so far, in [0, len(pattern)].
type State int

// Start is the initial state of every automaton.
const Start State = 0

// Automaton is immutable once built and safe for concurrent scans.
type Automaton struct {
	pattern string
	alpha   *alphabet.Alphabet
	// delta[state*width+col], width is the alphabet size.
	delta []int32
	width int
}

// Transition is one (state, symbol) -> target entry of the table.
type Transition struct {
	From   State
	Symbol byte
	To     State
}

func newAutomaton(pattern string) *Automaton {
	a := &Automaton{pattern: pattern, alpha: alphabet.New(pattern)}
	a.width = a.alpha.Len()
	a.delta = make([]int32, (len(pattern)+1)*a.width)
	return a
}

func (a *Automaton) set(s State, col int, target int) {
	a.delta[int(s)*a.width+col] = safecast.MustConv[int32](target)
}

// New computes the full transition table: for every state i and symbol c the target
// is the longest prefix of the pattern that is a suffix of pattern[:i]+c.
// Each of the (m+1)*|alphabet| entries probes up to m candidate suffixes with an O(m)
// trie walk, so construction is O(m^3 * |alphabet|); use NewKMP for long patterns.
// It never fails, the empty pattern included.
func New(pattern string) *Automaton {
	a := newAutomaton(pattern)
	prefixes := trie.New(pattern)
	for i := range prefixes.Len() {
		p := prefixes.At(i)
		for col := range a.width {
			// string(byte) would UTF-8 encode symbols >= 0x80.
			candidate := p + string([]byte{a.alpha.Symbol(col)})
			a.set(State(i), col, prefixes.LongestSuffix(candidate))
		}
	}
	log.LogVf("Built automaton for %q: %d states x %d symbols", pattern, a.NumStates(), a.width)
	return a
}

// NewKMP returns the same automaton as New, built in O(m * |alphabet|) from the
// failure function: a mismatch in state i behaves like state fail(i).
func NewKMP(pattern string) *Automaton {
	a := newAutomaton(pattern)
	m := len(pattern)
	if m == 0 {
		return a
	}
	a.set(Start, a.alpha.Index(pattern[0]), 1)
	x := Start // state reached on pattern[1:i], i.e. fail(i).
	for i := 1; i <= m; i++ {
		for col := range a.width {
			a.set(State(i), col, int(a.target(x, col)))
		}
		if i < m {
			col := a.alpha.Index(pattern[i])
			a.set(State(i), col, i+1)
			x = a.target(x, col)
		}
	}
	log.LogVf("Built automaton (kmp) for %q: %d states x %d symbols", pattern, a.NumStates(), a.width)
	return a
}

func (a *Automaton) target(s State, col int) State {
	return State(a.delta[int(s)*a.width+col])
}

func (a *Automaton) Pattern() string {
	return a.pattern
}

// Len is the pattern length m.
func (a *Automaton) Len() int {
	return len(a.pattern)
}

func (a *Automaton) NumStates() int {
	return len(a.pattern) + 1
}

// Accept returns the accepting state.
func (a *Automaton) Accept() State {
	return State(len(a.pattern))
}

func (a *Automaton) Alphabet() *alphabet.Alphabet {
	return a.alpha
}

// Size is the number of entries in the table.
func (a *Automaton) Size() int {
	return len(a.delta)
}

// Next is the raw table lookup; ok is false for symbols outside the alphabet.
func (a *Automaton) Next(s State, c byte) (State, bool) {
	col := a.alpha.Index(c)
	if col == alphabet.Absent {
		return Start, false
	}
	return a.target(s, col), true
}

// Step is Next with the miss policy applied: no prefix of the pattern can end with
// a symbol the pattern doesn't contain, so a miss goes back to Start.
func (a *Automaton) Step(s State, c byte) State {
	next, _ := a.Next(s, c)
	return next
}

// Transitions enumerates the table state major, then by ascending symbol.
func (a *Automaton) Transitions() iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for s := range a.NumStates() {
			for col := range a.width {
				t := Transition{From: State(s), Symbol: a.alpha.Symbol(col), To: a.target(State(s), col)}
				if !yield(t) {
					return
				}
			}
		}
	}
}
