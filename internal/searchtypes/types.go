package searchtypes

// Match represents one reported occurrence of the search pattern.
// Matches are produced only by the output parser, are immutable once
// created, and live for exactly one search run.
type Match struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// Options configures a single search invocation. Values not set here fall
// back to the configuration file defaults when the argument list is built.
type Options struct {
	CaseSensitive bool     // Override smart-case with exact case matching
	Multiline     bool     // Allow patterns to span lines
	MaxResults    int      // Per-file match cap passed to the tool (0 = unlimited)
	IncludeGlobs  []string // Whitespace-separated glob tokens to include
	ExcludeGlobs  []string // Whitespace-separated glob tokens to exclude
	ExtraFlags    []string // Additional tool flags, validated before use
	SearchPath    string   // Explicit search root (empty = tool's working directory)
}

// RunState describes the lifecycle of one external-process invocation.
// Completed, Cancelled and Failed are terminal: no run ever transitions
// out of them.
type RunState int32

const (
	RunStateIdle RunState = iota
	RunStateRunning
	RunStateCompleted
	RunStateCancelled
	RunStateFailed
)

// String returns the state name for diagnostics
func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "idle"
	case RunStateRunning:
		return "running"
	case RunStateCompleted:
		return "completed"
	case RunStateCancelled:
		return "cancelled"
	case RunStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is one a run can never leave
func (s RunState) Terminal() bool {
	return s == RunStateCompleted || s == RunStateCancelled || s == RunStateFailed
}

// Plan describes a replacement to apply across the files referenced by a
// result set. Matches are grouped by file before execution.
type Plan struct {
	Pattern     string  `json:"pattern"`
	Replacement string  `json:"replacement"`
	Matches     []Match `json:"matches"`
}

// DefaultOptions returns search options with sensible defaults
func DefaultOptions() Options {
	return Options{
		CaseSensitive: false,
		Multiline:     false,
		MaxResults:    0,
	}
}
