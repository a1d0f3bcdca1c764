// Package ripgrep builds and parses the wire surface of the external search
// tool: argument-list construction, flag validation, and decoding of the
// path:line:col:text output format.
package ripgrep

import (
	"strings"

	fserrors "github.com/standardbeagle/findsweep/internal/errors"
)

// deniedFlags maps flags that change the tool's output shape to the reason
// they are rejected. The output parser assumes one match per line in
// colon-delimited text; any of these flags would silently corrupt parsing.
var deniedFlags = map[string]string{
	"--files":                "emits a file list instead of match lines",
	"-l":                     "emits matching file names only",
	"--files-with-matches":   "emits matching file names only",
	"--files-without-match":  "emits non-matching file names only",
	"--json":                 "emits JSON events instead of match lines",
	"-c":                     "emits per-file match counts instead of match lines",
	"--count":                "emits per-file match counts instead of match lines",
	"--count-matches":        "emits per-file match counts instead of match lines",
	"-0":                     "null-separates output",
	"--null":                 "null-separates file names",
	"--null-data":            "uses NUL instead of newline as the line terminator",
	"--binary":               "emits binary data that cannot be line-parsed",
	"--pretty":               "forces colored, heading-grouped output",
	"-p":                     "forces colored, heading-grouped output",
	"--heading":              "groups matches under file name headings",
	"--vimgrep":              "already implied by the base flags",
	"--no-line-number":       "removes the line number column",
	"-N":                     "removes the line number column",
	"--no-filename":          "removes the file path column",
	"-I":                     "removes the file path column",
}

// ValidateFlags rejects any flag that equals, or is the name=value form of,
// a denylisted flag. Validation is pure: it must run before a flag list is
// merged into a command line, and it never mutates its input.
func ValidateFlags(flags []string) error {
	for _, flag := range flags {
		name := flag
		if idx := strings.IndexByte(flag, '='); idx >= 0 {
			name = flag[:idx]
		}
		if reason, denied := deniedFlags[name]; denied {
			return fserrors.NewFlagError(flag, reason)
		}
	}
	return nil
}
