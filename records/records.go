// Package records reads patterns and texts and writes transition tables and match
// lists as plain text records (or yaml for the table).
package records // import "github.com/ldemailly/dfamatch/records"

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/log"
	"github.com/ldemailly/dfamatch/dfa"
	"gopkg.in/yaml.v3"
)

// ReadSymbols returns the whitespace separated words of r concatenated together,
// so a pattern or text can be spread over several lines.
func ReadSymbols(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)
	scanner.Split(bufio.ScanWords)
	var sb strings.Builder
	for scanner.Scan() {
		sb.Write(scanner.Bytes())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading symbols: %w", err)
	}
	return sb.String(), nil
}

// Symbols applies the ReadSymbols policy to an in memory string: whitespace is dropped.
func Symbols(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ReadRaw returns all of r, whitespace included.
func ReadRaw(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading raw input: %w", err)
	}
	return string(b), nil
}

// Format of a transition table dump.
type Format int

const (
	FormatText Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat maps a -format flag value (case insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatText, fmt.Errorf("unknown format %q, expected text or yaml", s)
}

// Symbol renders c for the text format: as is when printable ASCII, quoted otherwise
// (space included, so a record always has 3 fields).
func Symbol(c byte) string {
	switch {
	case c > ' ' && c < unicode.MaxASCII:
		return string([]byte{c})
	case c < utf8.RuneSelf:
		return strconv.QuoteRune(rune(c))
	default:
		return fmt.Sprintf(`'\x%02x'`, c)
	}
}

// WriteDelta writes the transition table of a, state major then by symbol.
func WriteDelta(w io.Writer, a *dfa.Automaton, format Format) error {
	switch format {
	case FormatText:
		return writeDeltaText(w, a)
	case FormatYAML:
		return writeDeltaYAML(w, a)
	default:
		return fmt.Errorf("unsupported format %v", format)
	}
}

func writeDeltaText(w io.Writer, a *dfa.Automaton) error {
	bw := bufio.NewWriter(w)
	for t := range a.Transitions() {
		if _, err := fmt.Fprintf(bw, "%d %s %d\n", t.From, Symbol(t.Symbol), t.To); err != nil {
			return fmt.Errorf("writing transition table: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing transition table: %w", err)
	}
	log.LogVf("Wrote %d transitions", a.Size())
	return nil
}

// Table is the yaml form of an automaton.
type Table struct {
	Pattern     string       `yaml:"pattern"`
	States      int          `yaml:"states"`
	Accept      int          `yaml:"accept"`
	Alphabet    string       `yaml:"alphabet"`
	Transitions []TableEntry `yaml:"transitions"`
}

// TableEntry is one transition of a Table.
type TableEntry struct {
	From   int    `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     int    `yaml:"to"`
}

// NewTable converts a for yaml encoding, in Transitions order.
func NewTable(a *dfa.Automaton) Table {
	t := Table{
		Pattern:     a.Pattern(),
		States:      a.NumStates(),
		Accept:      int(a.Accept()),
		Alphabet:    a.Alphabet().String(),
		Transitions: make([]TableEntry, 0, a.Size()),
	}
	for tr := range a.Transitions() {
		t.Transitions = append(t.Transitions, TableEntry{From: int(tr.From), Symbol: string([]byte{tr.Symbol}), To: int(tr.To)})
	}
	return t
}

func writeDeltaYAML(w io.Writer, a *dfa.Automaton) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewTable(a)); err != nil {
		return fmt.Errorf("encoding transition table: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding transition table: %w", err)
	}
	return nil
}

// WriteMatches writes one offset per line, in the order given.
func WriteMatches(w io.Writer, matches []int) error {
	bw := bufio.NewWriter(w)
	for _, m := range matches {
		bw.WriteString(strconv.Itoa(m))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing matches: %w", err)
	}
	return nil
}
