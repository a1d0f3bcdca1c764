package ripgrep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/findsweep/internal/config"
	fserrors "github.com/standardbeagle/findsweep/internal/errors"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Project.Root = "/tmp/project"
	return cfg
}

// assertSubsequence checks that want appears in args contiguously
func assertSubsequence(t *testing.T, args, want []string) {
	t.Helper()
	for i := 0; i+len(want) <= len(args); i++ {
		matched := true
		for j := range want {
			if args[i+j] != want[j] {
				matched = false
				break
			}
		}
		if matched {
			return
		}
	}
	t.Errorf("expected %v to contain contiguous subsequence %v", args, want)
}

func TestBuildArgsEmptyPattern(t *testing.T) {
	_, err := BuildArgs("", searchtypes.DefaultOptions(), testConfig())
	assert.ErrorIs(t, err, fserrors.ErrEmptyPattern)

	_, err = BuildArgs("   ", searchtypes.DefaultOptions(), testConfig())
	assert.ErrorIs(t, err, fserrors.ErrEmptyPattern)
}

func TestBuildArgsBaseShape(t *testing.T) {
	args, err := BuildArgs("needle", searchtypes.DefaultOptions(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--color=never",
		"--no-heading",
		"--with-filename",
		"--line-number",
		"--column",
		"--smart-case",
		"--",
		"needle",
	}, args)
}

func TestBuildArgsCaseSensitiveOverride(t *testing.T) {
	opts := searchtypes.DefaultOptions()
	opts.CaseSensitive = true

	args, err := BuildArgs("Needle", opts, testConfig())
	require.NoError(t, err)

	assert.Contains(t, args, "--case-sensitive")
	assert.NotContains(t, args, "--smart-case")
}

func TestBuildArgsMultilineAndMaxResults(t *testing.T) {
	opts := searchtypes.DefaultOptions()
	opts.Multiline = true
	opts.MaxResults = 50

	args, err := BuildArgs("needle", opts, testConfig())
	require.NoError(t, err)

	assert.Contains(t, args, "--multiline")
	assert.Contains(t, args, "--max-count=50")
}

func TestBuildArgsIgnoreAndHiddenFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Search.RespectIgnore = false
	cfg.Search.SearchHidden = true

	args, err := BuildArgs("needle", searchtypes.DefaultOptions(), cfg)
	require.NoError(t, err)

	assert.Contains(t, args, "--no-ignore")
	assert.Contains(t, args, "--hidden")
}

func TestBuildArgsRejectsDenylistedExtraFlags(t *testing.T) {
	opts := searchtypes.DefaultOptions()
	opts.ExtraFlags = []string{"--json"}

	_, err := BuildArgs("needle", opts, testConfig())

	var flagErr *fserrors.FlagError
	require.True(t, errors.As(err, &flagErr))
	assert.Equal(t, "--json", flagErr.Flag)
}

func TestBuildArgsRejectsDenylistedConfigFlags(t *testing.T) {
	cfg := testConfig()
	cfg.Search.ExtraFlags = []string{"--files"}

	_, err := BuildArgs("needle", searchtypes.DefaultOptions(), cfg)
	require.Error(t, err)
}

func TestBuildArgsGlobExpansion(t *testing.T) {
	opts := searchtypes.DefaultOptions()
	opts.IncludeGlobs = []string{"*.go *.md"}
	opts.ExcludeGlobs = []string{"vendor/**"}

	args, err := BuildArgs("needle", opts, testConfig())
	require.NoError(t, err)

	// Whitespace-separated tokens become one --glob each; excludes are negated.
	assertSubsequence(t, args, []string{"--glob", "*.go", "--glob", "*.md"})
	assertSubsequence(t, args, []string{"--glob", "!vendor/**"})
}

func TestBuildArgsInvalidGlob(t *testing.T) {
	opts := searchtypes.DefaultOptions()
	opts.IncludeGlobs = []string{"[unclosed"}

	_, err := BuildArgs("needle", opts, testConfig())

	var globErr *fserrors.GlobError
	require.True(t, errors.As(err, &globErr))
	assert.Equal(t, "[unclosed", globErr.Pattern)
}

func TestBuildArgsSeparatorBeforePattern(t *testing.T) {
	opts := searchtypes.DefaultOptions()
	opts.SearchPath = "/tmp/project"

	args, err := BuildArgs("-pattern-with-dash", opts, testConfig())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(args), 3)
	assert.Equal(t, "--", args[len(args)-3])
	assert.Equal(t, "-pattern-with-dash", args[len(args)-2])
	assert.Equal(t, "/tmp/project", args[len(args)-1])
}

func TestBuildArgsExtraFlagsBeforeGlobs(t *testing.T) {
	cfg := testConfig()
	cfg.Search.ExtraFlags = []string{"--fixed-strings"}
	opts := searchtypes.DefaultOptions()
	opts.ExtraFlags = []string{"--word-regexp"}
	opts.IncludeGlobs = []string{"*.go"}

	args, err := BuildArgs("needle", opts, cfg)
	require.NoError(t, err)

	assertSubsequence(t, args, []string{"--fixed-strings", "--word-regexp", "--glob", "*.go"})
}
