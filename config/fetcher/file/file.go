package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdin is the path that makes NewFetcher read standard input instead of a file.
const Stdin = "-"

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher over a file read once at construction.
type Fetcher struct {
	source string
	data   []byte
}

// NewFetcher returns an Fx-friendly constructor for a Fetcher reading fpath.
// The file is read when the constructor runs; Stdin reads standard input.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if fpath == Stdin {
			return FromReader("stdin", os.Stdin)
		}

		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{source: cleanPath, data: data}, nil
	}
}

// FromReader drains r into a Fetcher. The name only appears in errors and Source.
func FromReader(name string, r io.Reader) (*Fetcher, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return &Fetcher{source: name, data: data}, nil
}

// Source returns the cleaned path or reader name the data came from.
func (f *Fetcher) Source() string {
	return f.source
}

// Fetch returns a copy of the data read at construction.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
