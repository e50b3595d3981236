// Trie implements the prefix table of a pattern as a byte trie.
// Every node is a prefix of the pattern so walking it answers "is this a prefix"
// without comparing strings. Like the rest of this module it uses arrays, not maps.
package trie // import "github.com/ldemailly/dfamatch/trie"

type Trie struct {
	// Children of this node.
	children [256]*Trie
	// Length of the prefix this node represents.
	depth int
}

// Prefixes holds all the prefixes pattern[0:i], i in [0, len(pattern)].
type Prefixes struct {
	pattern string
	root    *Trie
}

// New builds the prefix table of pattern. The root is the empty prefix.
func New(pattern string) *Prefixes {
	root := &Trie{}
	t := root
	for i := range len(pattern) {
		next := &Trie{depth: i + 1}
		t.children[pattern[i]] = next
		t = next
	}
	return &Prefixes{pattern: pattern, root: root}
}

// Len is the number of prefixes, including the empty one.
func (p *Prefixes) Len() int {
	return len(p.pattern) + 1
}

// At returns the prefix of length i.
func (p *Prefixes) At(i int) string {
	return p.pattern[:i]
}

// Node returns the node for word or nil when word isn't a prefix of the pattern.
func (p *Prefixes) Node(word string) *Trie {
	t := p.root
	for i := range len(word) {
		t = t.children[word[i]]
		if t == nil {
			return nil
		}
	}
	return t
}

func (p *Prefixes) IsPrefix(word string) bool {
	return p.Node(word) != nil
}

// LongestSuffix returns the length of the longest non-empty prefix of the pattern
// that is also a suffix of s, or 0. Candidates are tried longest first so the first
// one found is the maximum.
func (p *Prefixes) LongestSuffix(s string) int {
	for k := min(len(s), len(p.pattern)); k >= 1; k-- {
		if p.IsPrefix(s[len(s)-k:]) {
			return k
		}
	}
	return 0
}

// Depth is the length of the prefix t stands for, -1 for nil.
func (t *Trie) Depth() int {
	if t == nil {
		return -1
	}
	return t.depth
}

/*
  pattern "abc":

  root -a-> [1] -b-> [2] -c-> [3]
*/
