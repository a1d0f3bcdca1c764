// Package replace applies literal text substitutions across the files named
// by a set of matches.
package replace

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/findsweep/internal/debug"
	fserrors "github.com/standardbeagle/findsweep/internal/errors"
	"github.com/standardbeagle/findsweep/internal/results"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// Result summarizes one replacement pass
type Result struct {
	// Replaced counts the matches whose files were actually modified.
	Replaced int
	// FilesChanged counts the files rewritten on disk.
	FilesChanged int
	// Errors holds the per-file failures; files listed here were left
	// untouched but did not stop the pass.
	Errors []*fserrors.FileError
}

// Apply substitutes the plan's replacement for every occurrence of its
// pattern in each file named by its matches. Both operands are literal
// text. The pass is best-effort at file granularity: a file that cannot
// be read or written is reported and skipped, and the remaining files
// still proceed. Files are rewritten only when their content actually
// changes, preserving the original permission bits. An empty match set
// touches nothing.
func Apply(ctx context.Context, plan searchtypes.Plan) Result {
	if plan.Pattern == "" || len(plan.Matches) == 0 {
		return Result{}
	}

	counts := results.CountByFile(plan.Matches)
	paths := make([]string, 0, len(counts))
	for _, g := range results.GroupByFile(plan.Matches) {
		paths = append(paths, g.Path)
	}

	var (
		mu  sync.Mutex
		res Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			changed, err := applyToFile(path, plan.Pattern, plan.Replacement)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Errors = append(res.Errors, err)
				return nil
			}
			if changed {
				res.FilesChanged++
				res.Replaced += counts[path]
			}
			return nil
		})
	}
	_ = g.Wait()

	debug.LogReplace("replace %q -> %q: %d matches in %d files, %d errors\n",
		plan.Pattern, plan.Replacement, res.Replaced, res.FilesChanged, len(res.Errors))

	return res
}

// applyToFile rewrites one file in place, returning whether its content
// changed. The change check hashes the content rather than comparing
// byte slices, so large unchanged files cost one pass.
func applyToFile(path, pattern, replacement string) (bool, *fserrors.FileError) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fserrors.NewFileError("read", path, err)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return false, fserrors.NewFileError("read", path, err)
	}

	updated := strings.ReplaceAll(string(original), pattern, replacement)
	if xxhash.Sum64(original) == xxhash.Sum64String(updated) {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fserrors.NewFileError("write", path, err)
	}
	return true, nil
}
