package records

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"
)

// Stdio is the file name standing for stdin or stdout.
const Stdio = "-"

// ReadFile reads path (or stdin for "-") with ReadSymbols, or ReadRaw when raw is set.
func ReadFile(path string, raw bool) (string, error) {
	var r io.Reader = os.Stdin
	if path != Stdio {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	read := ReadSymbols
	if raw {
		read = ReadRaw
	}
	s, err := read(r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	log.LogVf("Read %d symbols from %s", len(s), path)
	return s, nil
}

// WriteFile calls fn with a writer for path. "-" writes to stdout; otherwise the
// content goes to a temporary file in the same directory which is renamed over path
// once fn succeeded, so readers never see a partial file.
func WriteFile(path string, fn func(w io.Writer) error) error {
	if path == Stdio {
		return fn(os.Stdout)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0o644)
	bw := bufio.NewWriter(tmp)
	if err := fn(bw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	log.LogVf("Wrote %s", path)
	return nil
}
