package ripgrep

import (
	"strconv"
	"strings"

	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// ParseLine decodes one line of path:line:col:text output into a Match.
// Returns ok=false for empty or malformed lines; malformed lines are not
// errors, they are skipped.
//
// The parse is right-anchored: the path may itself contain colons (Windows
// drive letters, URLs in file names), so the line/column pair is located by
// scanning for the rightmost pair of adjacent positive integer tokens with
// at least one path token before it. Everything before the pair is the
// path, everything after it is the match text, colons restored.
func ParseLine(line string) (searchtypes.Match, bool) {
	if line == "" {
		return searchtypes.Match{}, false
	}

	tokens := strings.Split(line, ":")
	if len(tokens) < 4 {
		return searchtypes.Match{}, false
	}

	for i := len(tokens) - 3; i >= 1; i-- {
		lineNo, ok := parsePositiveInt(tokens[i])
		if !ok {
			continue
		}
		column, ok := parsePositiveInt(tokens[i+1])
		if !ok {
			continue
		}

		return searchtypes.Match{
			Path:   strings.Join(tokens[:i], ":"),
			Line:   lineNo,
			Column: column,
			Text:   strings.Join(tokens[i+2:], ":"),
		}, true
	}

	return searchtypes.Match{}, false
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
