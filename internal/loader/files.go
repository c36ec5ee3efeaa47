package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"quizset/internal/domain"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentReads = 8

// File is a question set together with the path it was loaded from.
type File struct {
	Path string
	Set  domain.QuestionSet
}

// LoadFile reads and decodes one question set file.
func LoadFile(path string) (domain.QuestionSet, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return domain.QuestionSet{}, fmt.Errorf("unsupported question set file extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode(data, format, path)
}

// LoadDir loads every .json/.yaml/.yml file under dir, ordered by path.
// The first unreadable or ill-shaped file aborts the load.
func LoadDir(ctx context.Context, dir string) ([]File, error) {
	paths, err := listDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := LoadFile(path)
			if err != nil {
				return err
			}
			files[i] = File{Path: path, Set: set}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// ListFiles expands directories into the question set files they contain.
// Plain file paths are returned as given, whatever their extension.
func ListFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		dirPaths, err := listDir(p)
		if err != nil {
			return nil, err
		}
		out = append(out, dirPaths...)
	}
	return out, nil
}

// LoadPaths loads each path, expanding directories, and stops at the first failure.
func LoadPaths(ctx context.Context, paths []string) ([]File, error) {
	files, err := ListFiles(paths)
	if err != nil {
		return nil, err
	}
	out := make([]File, 0, len(files))
	for _, p := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, File{Path: p, Set: set})
	}
	return out, nil
}

func listDir(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := FormatFromPath(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
