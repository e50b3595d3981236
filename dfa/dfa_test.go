package dfa_test

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ldemailly/dfamatch/dfa"
)

func TestTransitionTable(t *testing.T) {
	a := dfa.New("ab")
	expected := []dfa.Transition{
		{0, 'a', 1},
		{0, 'b', 0},
		{1, 'a', 1},
		{1, 'b', 2},
		{2, 'a', 1},
		{2, 'b', 0},
	}
	got := slices.Collect(a.Transitions())
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Transitions() mismatch (-want +got):\n%s", diff)
	}
	if a.Size() != 6 || a.NumStates() != 3 || a.Accept() != 2 || a.Len() != 2 {
		t.Errorf("Unexpected shape: size %d states %d accept %d len %d", a.Size(), a.NumStates(), a.Accept(), a.Len())
	}
	if a.Pattern() != "ab" || a.Alphabet().String() != "ab" {
		t.Errorf("Unexpected pattern %q / alphabet %q", a.Pattern(), a.Alphabet())
	}
}

func TestTransitionsEarlyStop(t *testing.T) {
	a := dfa.New("abcabd")
	n := 0
	for range a.Transitions() {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Errorf("Expected to stop after 5 transitions, got %d", n)
	}
}

func TestLookupMiss(t *testing.T) {
	a := dfa.New("aba")
	if s, ok := a.Next(2, 'c'); ok || s != dfa.Start {
		t.Errorf("Next(2, 'c') = %d, %v, expected a miss", s, ok)
	}
	if s := a.Step(2, 'c'); s != dfa.Start {
		t.Errorf("Step(2, 'c') = %d, expected reset to Start", s)
	}
	if s, ok := a.Next(2, 'a'); !ok || s != 3 {
		t.Errorf("Next(2, 'a') = %d, %v, expected 3, true", s, ok)
	}
}

// Every entry is in [0, m] and the table is total over states x alphabet.
func TestDeltaRange(t *testing.T) {
	for _, pattern := range []string{"a", "aa", "aba", "abcabd", "mississippi", "aabaaab", "xyz"} {
		a := dfa.New(pattern)
		count := 0
		for tr := range a.Transitions() {
			count++
			if tr.To < 0 || int(tr.To) > len(pattern) {
				t.Errorf("%q: transition %+v out of range", pattern, tr)
			}
		}
		if expected := (len(pattern) + 1) * a.Alphabet().Len(); count != expected {
			t.Errorf("%q: %d transitions, expected %d", pattern, count, expected)
		}
		for s := range a.NumStates() {
			for _, c := range a.Alphabet().Symbols() {
				if _, ok := a.Next(dfa.State(s), c); !ok {
					t.Errorf("%q: no transition for (%d, %q)", pattern, s, c)
				}
			}
		}
	}
}

func longestSuffixPrefix(pattern, s string) int {
	for k := min(len(s), len(pattern)); k > 0; k-- {
		if strings.HasSuffix(s, pattern[:k]) {
			return k
		}
	}
	return 0
}

// After each symbol the state is the longest pattern prefix that is a suffix of the
// input so far; in particular the accepting state means the last m symbols are the
// pattern.
func TestStateInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for _, pattern := range []string{"a", "ab", "aab", "abab", "abaab", "bbabb"} {
		a := dfa.New(pattern)
		var buf []byte
		for range 200 {
			buf = buf[:0]
			s := dfa.Start
			for range rng.IntN(30) {
				c := "abc"[rng.IntN(3)]
				buf = append(buf, c)
				s = a.Step(s, c)
				expected := longestSuffixPrefix(pattern, string(buf))
				if int(s) != expected {
					t.Fatalf("%q after %q: state %d, expected %d", pattern, buf, s, expected)
				}
				if (s == a.Accept()) != strings.HasSuffix(string(buf), pattern) {
					t.Fatalf("%q after %q: accepting state mismatch", pattern, buf)
				}
			}
		}
	}
}

func TestKMPBuilderMatches(t *testing.T) {
	for _, pattern := range []string{
		"", "a", "aa", "ab", "aba", "aaa", "abcabd", "mississippi",
		"aabaaab", "abababab", "xyzzyx", "the quick brown fox",
		"café", "\xff", "\xff\x00\xff", "\x80\x80\x81", "日本日本語",
	} {
		naive := slices.Collect(dfa.New(pattern).Transitions())
		kmp := slices.Collect(dfa.NewKMP(pattern).Transitions())
		if diff := cmp.Diff(naive, kmp); diff != "" {
			t.Errorf("%q: New and NewKMP differ (-New +NewKMP):\n%s", pattern, diff)
		}
	}
}

// Symbols >= 0x80 are single bytes, not runes.
func TestHighByteTransitions(t *testing.T) {
	a := dfa.New("\xff\x00\xff")
	expected := []dfa.Transition{
		{0, 0x00, 0},
		{0, 0xff, 1},
		{1, 0x00, 2},
		{1, 0xff, 1},
		{2, 0x00, 0},
		{2, 0xff, 3},
		{3, 0x00, 2},
		{3, 0xff, 1},
	}
	got := slices.Collect(a.Transitions())
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Transitions() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyPatternAutomaton(t *testing.T) {
	a := dfa.New("")
	if a.NumStates() != 1 || a.Accept() != dfa.Start || a.Size() != 0 {
		t.Errorf("Unexpected empty automaton: states %d accept %d size %d", a.NumStates(), a.Accept(), a.Size())
	}
	if _, ok := a.Next(dfa.Start, 'a'); ok {
		t.Errorf("Empty pattern should have no transitions")
	}
}
