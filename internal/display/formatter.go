package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/standardbeagle/findsweep/internal/results"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// Formatter renders search results for terminal or machine consumption
type Formatter struct {
	options FormatterOptions
}

// FormatterOptions controls result formatting
type FormatterOptions struct {
	Format      string // "text", "json", "compact"
	ShowColumns bool   // Include column numbers in text output
	Indent      string // Indentation for grouped lines
}

// NewFormatter creates a formatter with the given options
func NewFormatter(options FormatterOptions) *Formatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &Formatter{options: options}
}

// FormatMatches renders matches grouped by file
func (f *Formatter) FormatMatches(matches []searchtypes.Match) string {
	switch f.options.Format {
	case "json":
		return f.formatJSON(matches)
	case "compact":
		return f.formatCompact(matches)
	default:
		return f.formatText(matches)
	}
}

// formatText renders one header line per file with its matches indented
func (f *Formatter) formatText(matches []searchtypes.Match) string {
	if len(matches) == 0 {
		return "No matches found\n"
	}

	groups := results.GroupByFile(matches)

	var sb strings.Builder
	for i, group := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%d)\n", group.Path, len(group.Matches)))
		for _, m := range group.Matches {
			sb.WriteString(f.options.Indent)
			if f.options.ShowColumns {
				sb.WriteString(fmt.Sprintf("%d:%d: %s\n", m.Line, m.Column, m.Text))
			} else {
				sb.WriteString(fmt.Sprintf("%d: %s\n", m.Line, m.Text))
			}
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d matches in %d files\n", len(matches), len(groups)))
	return sb.String()
}

// formatCompact renders one match per line in path:line:col:text form
func (f *Formatter) formatCompact(matches []searchtypes.Match) string {
	var sb strings.Builder
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("%s:%d:%d:%s\n", m.Path, m.Line, m.Column, m.Text))
	}
	return sb.String()
}

type jsonOutput struct {
	Matches []searchtypes.Match `json:"matches"`
	Files   int                 `json:"files"`
	Total   int                 `json:"total"`
}

func (f *Formatter) formatJSON(matches []searchtypes.Match) string {
	out := jsonOutput{
		Matches: matches,
		Files:   len(results.GroupByFile(matches)),
		Total:   len(matches),
	}
	if out.Matches == nil {
		out.Matches = []searchtypes.Match{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data) + "\n"
}

// FormatPreview renders before/after line diffs for a dry-run replacement
func (f *Formatter) FormatPreview(diffs []results.LineDiff) string {
	if f.options.Format == "json" {
		data, err := json.MarshalIndent(diffs, "", "  ")
		if err != nil {
			return fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		return string(data) + "\n"
	}

	if len(diffs) == 0 {
		return "Nothing to replace\n"
	}

	var sb strings.Builder
	lastPath := ""
	for _, d := range diffs {
		if d.Path != lastPath {
			if lastPath != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(d.Path + "\n")
			lastPath = d.Path
		}
		sb.WriteString(fmt.Sprintf("%s%d: - %s\n", f.options.Indent, d.Line, d.Before))
		sb.WriteString(fmt.Sprintf("%s%d: + %s\n", f.options.Indent, d.Line, d.After))
	}
	return sb.String()
}
