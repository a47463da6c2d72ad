// Package driver runs the formatter over files and directories for the
// ronfmt command.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/KimNorgaard/go-ronfmt"
)

// ErrNoFiles is returned by FormatPaths when the given paths contain no
// RON files.
var ErrNoFiles = errors.New("no RON files found")

// Options configures FormatPaths.
type Options struct {
	// Check reports which files would change without writing them.
	Check bool
	// Diff computes a unified diff for each changed file without writing it.
	Diff bool
	// Jobs limits how many files are formatted at once. Zero means
	// GOMAXPROCS.
	Jobs int
	// MaxDepth is the nesting limit handed to the formatter. Zero keeps the
	// library default.
	MaxDepth int
	// Extensions selects the files picked up while walking directories.
	// Defaults to ".ron".
	Extensions []string
	// Exclude holds filepath.Match patterns. A walked file or directory is
	// skipped when its base name or its path relative to the walk root
	// matches.
	Exclude []string
}

// Result captures the outcome for a single file.
type Result struct {
	Path    string
	Changed bool
	// Formatted is set in check and diff mode, where the file is left alone.
	Formatted []byte
	Diff      string
	Err       error
}

// FormatPaths formats the given files and directories. Files named
// explicitly are always formatted; directories are walked for files with
// one of opts.Extensions. Unless opts.Check or opts.Diff is set, a changed
// file is rewritten in place with its mode preserved.
//
// A failure on one file is recorded in its Result and does not stop the
// others. The returned error is reserved for problems with the paths
// themselves and for cancellation.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectFiles(ctx, paths, opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot.
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FormatReader formats everything read from r and writes the result to w.
func FormatReader(r io.Reader, w io.Writer, maxDepth int) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out, err := ronfmt.Format(src, formatOptions(maxDepth)...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func formatOptions(maxDepth int) []ronfmt.Option {
	if maxDepth <= 0 {
		return nil
	}
	return []ronfmt.Option{ronfmt.MaxDepth(maxDepth)}
}

func formatFile(path string, opts Options) Result {
	result := Result{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}
	formatted, err := ronfmt.Format(src, formatOptions(opts.MaxDepth)...)
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = !bytes.Equal(src, formatted)

	if opts.Check || opts.Diff {
		result.Formatted = formatted
		if opts.Diff && result.Changed {
			result.Diff = Unified(path, src, formatted)
		}
		return result
	}

	if result.Changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
			result.Changed = false
		}
	}
	return result
}

func collectFiles(ctx context.Context, paths []string, opts Options) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".ron"}
	}

	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != p && excluded(p, path, opts.Exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if slices.Contains(exts, filepath.Ext(path)) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func excluded(root, path string, patterns []string) bool {
	base := filepath.Base(path)
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
