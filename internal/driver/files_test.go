package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStem(t *testing.T) {
	assert.Equal(t, "Main", Stem("src/Main.jack"))
	assert.Equal(t, "Main", Stem("Main.jack"))
}

func TestCollectFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.jack")
	require.NoError(t, os.WriteFile(path, []byte("class Main {}"), 0o644))

	files, err := CollectFiles(path, ".jack")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestCollectFilesDirectoryIsFilteredAndSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Zebra.jack", "Apple.jack", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}

	files, err := CollectFiles(dir, ".jack")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "Apple.jack"), files[0])
	assert.Equal(t, filepath.Join(dir, "Zebra.jack"), files[1])
}

func TestCollectFilesMissingPathIsIOError(t *testing.T) {
	_, err := CollectFiles(filepath.Join(t.TempDir(), "nope"), ".jack")
	require.Error(t, err)
}

func TestReadAndWriteUnitRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.jack")
	require.NoError(t, os.WriteFile(path, []byte("class Main {}"), 0o644))

	stem, source, err := ReadUnit(path)
	require.NoError(t, err)
	assert.Equal(t, "Main", stem)
	assert.Equal(t, "class Main {}", source)

	outPath := filepath.Join(dir, "Main.vm")
	require.NoError(t, WriteOutput(outPath, "push constant 0\n"))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "push constant 0\n", string(content))
}

func TestMapOrderedPreservesOrderRegardlessOfCompletionOrder(t *testing.T) {
	paths := []string{"c", "a", "b"}
	results, err := MapOrdered(paths, func(path string) (string, error) {
		return path + path, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cc", "aa", "bb"}, results)
}

func TestMapOrderedPropagatesError(t *testing.T) {
	paths := []string{"a", "bad", "c"}
	_, err := MapOrdered(paths, func(path string) (string, error) {
		if path == "bad" {
			return "", os.ErrNotExist
		}
		return path, nil
	})
	require.Error(t, err)
}
