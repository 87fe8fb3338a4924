package history

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendDedupesOnlyImmediatePredecessor(t *testing.T) {
	s := New("")
	s.Append("let x = 1")
	s.Append("let x = 1")
	s.Append("let y = 2")
	s.Append("let x = 1")
	require.Equal(t, []string{"let x = 1", "let y = 2", "let x = 1"}, s.Lines)
}

func TestAppendCapsAtMaxEntries(t *testing.T) {
	s := New("")
	for i := 0; i < MaxEntries+10; i++ {
		s.Append(randomish(i))
	}
	require.Len(t, s.Lines, MaxEntries)
	require.Equal(t, randomish(MaxEntries+9), s.Lines[len(s.Lines)-1])
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "history.json")

	s := New(path)
	s.Append("one")
	s.Append("two")
	require.NoError(t, s.Save())

	loaded := New(path)
	require.NoError(t, loaded.Load())
	require.Equal(t, []string{"one", "two"}, loaded.Lines)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, s.Load())
	require.Empty(t, s.Lines)
}

func TestLoadSkipsNonStringEntriesInsteadOfFailing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`["ok", 42, {"nested":true}, "also-ok"]`), 0o644))

	s := New(path)
	require.NoError(t, s.Load())
	require.Equal(t, []string{"ok", "also-ok"}, s.Lines)
}

func randomish(i int) string {
	return "line-" + strconv.Itoa(i)
}
