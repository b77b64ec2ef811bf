// Package driver holds the file-discovery, orchestration and concurrency
// glue shared by the jackc, vmtrans and asm commands. None of the three
// compilation stages (internal/jack, internal/vmlang, internal/hack) touch
// the filesystem directly; they consume and produce plain strings. This
// package is the only place os.Open/os.Create/filepath walking happens.
package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/n2t/toolchain/internal/n2terr"
)

// Stem returns the filename without its directory or extension, e.g.
// "src/Main.jack" -> "Main".
func Stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// CollectFiles returns the files to compile for fileOrDir: fileOrDir itself
// if it is a regular file, or every entry directly inside it (filtered by
// ext, case-sensitive, including the dot) in lexicographic order if it is a
// directory. Lexicographic order is required so that static-segment
// allocation and label numbering are reproducible across runs.
func CollectFiles(fileOrDir string, ext string) ([]string, error) {
	info, err := os.Stat(fileOrDir)
	if err != nil {
		return nil, &n2terr.IOError{Path: fileOrDir, Err: err}
	}

	if !info.IsDir() {
		return []string{fileOrDir}, nil
	}

	entries, err := os.ReadDir(fileOrDir)
	if err != nil {
		return nil, &n2terr.IOError{Path: fileOrDir, Err: err}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		files = append(files, filepath.Join(fileOrDir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ReadUnit reads path and returns its (stem, source-text) compile unit.
func ReadUnit(path string) (stem string, source string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", &n2terr.IOError{Path: path, Err: err}
	}
	return Stem(path), string(content), nil
}

// WriteOutput writes content to path, truncating any partial write and
// removing the file if it could not be completed.
func WriteOutput(path string, content string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return &n2terr.IOError{Path: path, Err: err}
	}
	defer func() {
		closeErr := f.Close()
		if err != nil {
			os.Remove(path)
			return
		}
		err = closeErr
	}()

	_, err = f.WriteString(content)
	return err
}

// MapOrdered runs work concurrently over paths, bounded by GOMAXPROCS via
// errgroup.SetLimit, and returns the results in the same order as paths
// regardless of completion order: each compile unit is independent, but
// results must still come back in lexicographic order to keep output
// reproducible.
func MapOrdered[T any](paths []string, work func(path string) (T, error)) ([]T, error) {
	results := make([]T, len(paths))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			out, err := work(path)
			if err != nil {
				return errors.Wrapf(err, "processing %q", path)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
