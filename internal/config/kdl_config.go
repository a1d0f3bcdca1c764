package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL loads configuration from a .findsweep.kdl file
func LoadKDL(kdlPath string) (*Config, error) {
	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", kdlPath, err)
	}

	return parseKDL(string(content))
}

// knownTopLevelKeys lists the node names parseKDL understands; unknown keys
// get a "did you mean" warning instead of a hard failure.
var knownTopLevelKeys = []string{"version", "project", "search", "watch", "include", "exclude"}

var knownSearchKeys = []string{
	"binary", "case_sensitive", "multiline", "max_results",
	"respect_ignore", "search_hidden", "extra_flags", "debounce_ms",
}

var knownWatchKeys = []string{"enabled", "debounce_ms"}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "project":
			for _, cn := range n.Children { // project { root "." name "foo" }
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "binary":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.Binary = s
					}
				case "case_sensitive":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.CaseSensitive = b
					}
				case "multiline":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.Multiline = b
					}
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxResults = v
					}
				case "respect_ignore":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.RespectIgnore = b
					}
				case "search_hidden":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.SearchHidden = b
					}
				case "extra_flags":
					cfg.Search.ExtraFlags = collectStringArgs(cn)
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.DebounceMs = v
					}
				default:
					warnUnknownKey(nodeName(cn), "search", knownSearchKeys)
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				default:
					warnUnknownKey(nodeName(cn), "watch", knownWatchKeys)
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			// Replace default exclusions if exclude block is present
			cfg.Exclude = collectStringArgs(n)
		default:
			warnUnknownKey(nodeName(n), "", knownTopLevelKeys)
		}
	}

	return cfg, nil
}

// Helper functions leveraging the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// First try to collect from arguments (for inline format)
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// If no arguments, collect from children (for block format like exclude { "pattern" })
	// In KDL block format, strings are child nodes where the node name is the string value
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

func warnUnknownKey(key, section string, known []string) {
	if key == "" {
		return
	}
	where := "config"
	if section != "" {
		where = section + " section"
	}
	if suggestion := SuggestKey(key, known); suggestion != "" {
		log.Printf("WARNING: unknown key %q in %s (did you mean %q?)", key, where, suggestion)
		return
	}
	log.Printf("WARNING: unknown key %q in %s", key, where)
}
