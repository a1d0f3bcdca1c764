package ripgrep

import (
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/findsweep/internal/config"
	fserrors "github.com/standardbeagle/findsweep/internal/errors"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// baseFlags request non-interactive, uncolored, path-prefixed,
// one-match-per-line output. Everything downstream depends on this shape.
var baseFlags = []string{
	"--color=never",
	"--no-heading",
	"--with-filename",
	"--line-number",
	"--column",
}

// BuildArgs assembles the argument list for one search invocation.
//
// Construction order is deliberate: later flags must never be misinterpreted
// as values of earlier ones, and the end-of-flags separator placed
// immediately before the pattern keeps patterns starting with "-" intact.
func BuildArgs(pattern string, opts searchtypes.Options, cfg *config.Config) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fserrors.ErrEmptyPattern
	}

	args := make([]string, 0, 16)
	args = append(args, baseFlags...)

	// Smart-case by default; explicit case-sensitive override.
	if opts.CaseSensitive || cfg.Search.CaseSensitive {
		args = append(args, "--case-sensitive")
	} else {
		args = append(args, "--smart-case")
	}

	if opts.Multiline || cfg.Search.Multiline {
		args = append(args, "--multiline")
	}

	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = cfg.Search.MaxResults
	}
	if maxResults > 0 {
		args = append(args, "--max-count="+strconv.Itoa(maxResults))
	}

	if !cfg.Search.RespectIgnore {
		args = append(args, "--no-ignore")
	}
	if cfg.Search.SearchHidden {
		args = append(args, "--hidden")
	}

	if err := ValidateFlags(cfg.Search.ExtraFlags); err != nil {
		return nil, err
	}
	args = append(args, cfg.Search.ExtraFlags...)

	if err := ValidateFlags(opts.ExtraFlags); err != nil {
		return nil, err
	}
	args = append(args, opts.ExtraFlags...)

	includes := append(globTokens(opts.IncludeGlobs), globTokens(cfg.Include)...)
	for _, tok := range includes {
		if !doublestar.ValidatePattern(tok) {
			return nil, fserrors.NewGlobError(tok)
		}
		args = append(args, "--glob", tok)
	}

	excludes := append(globTokens(opts.ExcludeGlobs), globTokens(cfg.Exclude)...)
	for _, tok := range excludes {
		if !doublestar.ValidatePattern(tok) {
			return nil, fserrors.NewGlobError(tok)
		}
		args = append(args, "--glob", "!"+tok)
	}

	// End-of-flags separator, then the pattern itself.
	args = append(args, "--", pattern)

	if opts.SearchPath != "" {
		args = append(args, opts.SearchPath)
	}

	return args, nil
}

// globTokens splits each entry on whitespace so users can paste
// space-separated glob lists ("*.go *.md") into a single field.
func globTokens(globs []string) []string {
	var out []string
	for _, g := range globs {
		out = append(out, strings.Fields(g)...)
	}
	return out
}
