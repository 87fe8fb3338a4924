// Package history persists REPL input lines to a small JSON file so a
// liner.State can be seeded with prior history across sessions.
package history

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MaxEntries bounds the history file: oldest entries are dropped once the
// store would grow past this.
const MaxEntries = 1000

// DefaultPath returns $HOME/.ember/history.json, creating the parent
// directory does not happen here — Store.Save does that lazily on first
// write so a read-only session never touches the filesystem.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ember", "history.json")
}

// Store is a capped, deduplicated list of history lines backed by a JSON
// file at Path. The zero value is usable; Load populates Lines from disk.
type Store struct {
	Path  string
	Lines []string
}

// New creates a Store for path without touching the filesystem.
func New(path string) *Store {
	return &Store{Path: path}
}

// Load reads the history file at s.Path, using gjson to walk the array so
// a hand-edited or partially-corrupt file degrades gracefully: entries
// that are not JSON strings are skipped rather than failing the whole
// load. A missing file is not an error — it just yields an empty Store.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !gjson.ValidBytes(data) {
		return nil
	}
	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return nil
	}
	var lines []string
	for _, entry := range result.Array() {
		if entry.Type == gjson.String {
			lines = append(lines, entry.Str)
		}
	}
	s.Lines = lines
	return nil
}

// Append adds line to the history, skipping it if it is identical to the
// immediately preceding entry (a user repeating the same line twice in a
// row does not grow the file), then caps the list to MaxEntries by
// dropping from the front.
func (s *Store) Append(line string) {
	if line == "" {
		return
	}
	if n := len(s.Lines); n > 0 && s.Lines[n-1] == line {
		return
	}
	s.Lines = append(s.Lines, line)
	if over := len(s.Lines) - MaxEntries; over > 0 {
		s.Lines = s.Lines[over:]
	}
}

// Save writes s.Lines to s.Path as a JSON array, building it incrementally
// with sjson rather than marshaling the whole slice at once, creating the
// parent directory if needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	doc := "[]"
	var err error
	for _, line := range s.Lines {
		// "-1" is sjson's append-to-array path.
		doc, err = sjson.Set(doc, "-1", line)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, []byte(doc), 0o644)
}
