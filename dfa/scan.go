package dfa

import "fortio.org/log"

// Scan returns the start offsets of every occurrence of the pattern in text, in
// increasing order, overlapping occurrences included. The empty pattern matches at
// every offset from 0 to len(text) inclusive, same as strings.Count.
// Each call returns a new slice; the automaton isn't modified.
func (a *Automaton) Scan(text string) []int {
	var matches []int
	m := NewMatcher(a, func(offset int) {
		matches = append(matches, offset)
	})
	for i := range len(text) {
		m.step(text[i])
	}
	m.Close()
	return matches
}

// ScanBytes is Scan for a byte slice.
func (a *Automaton) ScanBytes(text []byte) []int {
	var matches []int
	m := NewMatcher(a, func(offset int) {
		matches = append(matches, offset)
	})
	_, _ = m.Write(text)
	m.Close()
	return matches
}

// Count returns the number of (possibly overlapping) occurrences in text.
func (a *Automaton) Count(text []byte) int {
	n := 0
	m := NewMatcher(a, func(int) { n++ })
	_, _ = m.Write(text)
	m.Close()
	return n
}

// Matcher scans a text delivered in chunks, through Write, and reports each match
// start offset, relative to the beginning of the whole text, to its callback.
// A Matcher is meant to be used by a single goroutine.
type Matcher struct {
	a       *Automaton
	onMatch func(offset int)
	state   State
	offset  int // number of bytes consumed so far.
	closed  bool
}

// NewMatcher returns a Matcher at offset 0 in the Start state of a.
func NewMatcher(a *Automaton, onMatch func(offset int)) *Matcher {
	return &Matcher{a: a, onMatch: onMatch}
}

// Write never fails. It implements io.Writer so a text can be fed with io.Copy.
func (m *Matcher) Write(p []byte) (int, error) {
	for _, c := range p {
		m.step(c)
	}
	return len(p), nil
}

func (m *Matcher) step(c byte) {
	if m.a.Len() == 0 {
		// Every position, before consuming c, is the start of an empty match.
		m.onMatch(m.offset)
		m.offset++
		return
	}
	m.state = m.a.Step(m.state, c)
	if m.state == m.a.Accept() {
		m.onMatch(m.offset - (m.a.Len() - 1))
	}
	m.offset++
}

// Close marks the end of the text. Only the empty pattern has something left to
// report: the match at the very end. Closing more than once is a no-op.
func (m *Matcher) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.a.Len() == 0 {
		m.onMatch(m.offset)
	}
	log.Debugf("Matcher for %q closed after %d bytes in state %d", m.a.pattern, m.offset, m.state)
}

// Offset is the number of bytes consumed so far.
func (m *Matcher) Offset() int {
	return m.offset
}

// State is the current automaton state.
func (m *Matcher) State() State {
	return m.state
}

// Reset rewinds to the start state and offset 0 so the matcher can scan a new text.
func (m *Matcher) Reset() {
	m.state = Start
	m.offset = 0
	m.closed = false
}
