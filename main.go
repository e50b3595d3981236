// Dfamatch finds every occurrence of a pattern in a text using a string matching automaton.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/struct2env"
	"github.com/ldemailly/dfamatch/dfa"
	"github.com/ldemailly/dfamatch/records"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	DeltaFile   string
	MatchesFile string
	Format      string
}

var config = Config{
	MatchesFile: records.Stdio,
	Format:      "text",
}

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("DFAMATCH_", res, true)
	fmt.Fprintln(w, "# Dfamatch environment variables:")
	fmt.Fprint(w, str)
}

var hookBefore, hookAfter func() int

func Main() int {
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	errs := struct2env.SetFromEnv("DFAMATCH_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	patternFlag := flag.String("pattern", "", "`pattern` to search for (takes precedence over -pattern-file)")
	patternFile := flag.String("pattern-file", "", "read the pattern from `file` (- for stdin)")
	textFlag := flag.String("text", "", "inline `text` to scan instead of files")
	deltaFile := flag.String("delta", config.DeltaFile, "write the transition table to `file` (- for stdout)")
	matchesFile := flag.String("matches", config.MatchesFile, "write the match offsets to `file` (- for stdout)")
	formatFlag := flag.String("format", config.Format, "transition table `format`: text or yaml")
	naive := flag.Bool("naive", false, "build the table with the direct longest suffix-prefix construction, "+
		"O(m^3*|alphabet|), slow past a few hundred bytes of pattern")
	raw := flag.Bool("raw", false, "keep whitespace in pattern and text (it is dropped by default, inline values included)")
	count := flag.Bool("count", false, "only print the number of matches")
	cli.ArgsHelp = "text files to scan (concatenated), `-` for stdin, or none when using -text"
	cli.MaxArgs = -1
	cli.Main()

	format, err := records.ParseFormat(*formatFlag)
	if err != nil {
		return log.FErrf("%v", err)
	}
	pattern, err := readPattern(*patternFlag, *patternFile, *raw)
	if err != nil {
		return log.FErrf("Error reading pattern: %v", err)
	}
	if hookBefore != nil {
		if ret := hookBefore(); ret != 0 {
			return ret
		}
	}
	build := dfa.NewKMP
	if *naive {
		build = dfa.New
	}
	ret := run(build(pattern), format, *deltaFile, *matchesFile, *textFlag, *raw, *count)
	if hookAfter != nil {
		if after := hookAfter(); ret == 0 {
			ret = after
		}
	}
	return ret
}

// run writes the table, scans the text and writes the matches. Returns the exit code.
func run(a *dfa.Automaton, format records.Format, deltaFile, matchesFile, inline string, raw, count bool) int {
	log.S(log.Info, "Automaton built", log.Str("pattern", a.Pattern()),
		log.Attr("states", a.NumStates()), log.Attr("alphabet", a.Alphabet().Len()))
	if deltaFile != "" {
		err := records.WriteFile(deltaFile, func(w io.Writer) error {
			return records.WriteDelta(w, a, format)
		})
		if err != nil {
			return log.FErrf("Error writing transition table: %v", err)
		}
	}
	text, err := readTexts(inline, flag.Args(), raw)
	if err != nil {
		return log.FErrf("Error reading text: %v", err)
	}
	matches := a.Scan(text)
	log.Infof("%d match(es) in %d bytes of text", len(matches), len(text))
	if matchesFile == "" {
		return 0
	}
	err = records.WriteFile(matchesFile, func(w io.Writer) error {
		if count {
			_, err := fmt.Fprintln(w, len(matches))
			return err
		}
		return records.WriteMatches(w, matches)
	})
	if err != nil {
		return log.FErrf("Error writing matches: %v", err)
	}
	return 0
}

// inlineSymbols applies the same whitespace policy as the file readers.
func inlineSymbols(flagName, value string, raw bool) string {
	if raw {
		return value
	}
	s := records.Symbols(value)
	if s != value {
		log.Warnf("Dropped whitespace from %s %q, use -raw to keep it", flagName, value)
	}
	return s
}

func readPattern(inline, file string, raw bool) (string, error) {
	var pattern string
	if inline != "" || file == "" {
		if file != "" {
			log.Warnf("Both -pattern and -pattern-file given, using -pattern")
		}
		pattern = inlineSymbols("-pattern", inline, raw)
	} else {
		var err error
		pattern, err = records.ReadFile(file, raw)
		if err != nil {
			return "", err
		}
	}
	if pattern == "" {
		log.Warnf("Empty pattern, it matches at every offset")
	}
	return pattern, nil
}

// readTexts returns the inline text or the concatenation of files, in order.
func readTexts(inline string, files []string, raw bool) (string, error) {
	if inline != "" {
		if len(files) > 0 {
			return "", errors.New("-text and text files are mutually exclusive")
		}
		return inlineSymbols("-text", inline, raw), nil
	}
	if len(files) == 0 {
		return "", errors.New("no text to scan, use -text or give text files")
	}
	var sb strings.Builder
	for _, f := range files {
		s, err := records.ReadFile(f, raw)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
