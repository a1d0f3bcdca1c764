// Package mcp exposes the search and replace engine over the Model Context
// Protocol on stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/findsweep/internal/config"
	"github.com/standardbeagle/findsweep/internal/debug"
	"github.com/standardbeagle/findsweep/internal/replace"
	"github.com/standardbeagle/findsweep/internal/results"
	"github.com/standardbeagle/findsweep/internal/runner"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
	"github.com/standardbeagle/findsweep/internal/version"
	"github.com/standardbeagle/findsweep/pkg/pathutil"
)

// Server is the MCP frontend over the search runner
type Server struct {
	server *mcp.Server
	cfg    *config.Config
	runner *runner.Runner
}

// SearchParams are the arguments shared by the search-driven tools
type SearchParams struct {
	Pattern       string `json:"pattern"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
	Multiline     bool   `json:"multiline,omitempty"`
	Max           int    `json:"max,omitempty"`
	Include       string `json:"include,omitempty"`
	Exclude       string `json:"exclude,omitempty"`
}

// ReplaceParams extends SearchParams with the replacement text
type ReplaceParams struct {
	SearchParams
	Replacement string `json:"replacement"`
}

// NewServer creates an MCP server bound to the given configuration
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "findsweep",
			Version: version.Version,
		}, nil),
		cfg:    cfg,
		runner: runner.New(cfg),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	searchProperties := map[string]*jsonschema.Schema{
		"pattern": {
			Type:        "string",
			Description: "Regex pattern to search for",
		},
		"case_sensitive": {
			Type:        "boolean",
			Description: "Force case-sensitive matching (default is smart case)",
		},
		"multiline": {
			Type:        "boolean",
			Description: "Allow patterns to span lines",
		},
		"max": {
			Type:        "integer",
			Description: "Maximum matches per file",
		},
		"include": {
			Type:        "string",
			Description: "Whitespace-separated include globs, e.g. \"*.go *.md\"",
		},
		"exclude": {
			Type:        "string",
			Description: "Whitespace-separated exclude globs, e.g. \"vendor/**\"",
		},
	}

	s.server.AddTool(&mcp.Tool{
		Name:        "search",
		Description: "Search project files for a pattern. Returns matches grouped by file with line and column positions.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: searchProperties,
			Required:   []string{"pattern"},
		},
	}, s.handleSearch)

	replaceProperties := make(map[string]*jsonschema.Schema, len(searchProperties)+1)
	for k, v := range searchProperties {
		replaceProperties[k] = v
	}
	replaceProperties["replacement"] = &jsonschema.Schema{
		Type:        "string",
		Description: "Literal replacement text",
	}

	s.server.AddTool(&mcp.Tool{
		Name:        "preview_replace",
		Description: "Preview a replacement without modifying files. Returns before/after lines for every match.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: replaceProperties,
			Required:   []string{"pattern", "replacement"},
		},
	}, s.handlePreviewReplace)

	s.server.AddTool(&mcp.Tool{
		Name:        "replace",
		Description: "Replace every occurrence of a pattern across matching files. Files that cannot be modified are reported and skipped.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: replaceProperties,
			Required:   []string{"pattern", "replacement"},
		},
	}, s.handleReplace)
}

func (p SearchParams) options() searchtypes.Options {
	opts := searchtypes.DefaultOptions()
	opts.CaseSensitive = p.CaseSensitive
	opts.Multiline = p.Multiline
	opts.MaxResults = p.Max
	if p.Include != "" {
		opts.IncludeGlobs = []string{p.Include}
	}
	if p.Exclude != "" {
		opts.ExcludeGlobs = []string{p.Exclude}
	}
	return opts
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params SearchParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("search", fmt.Errorf("invalid parameters: %w", err))
	}

	matches, err := s.runner.Search(ctx, params.Pattern, params.options())
	if err != nil {
		return createErrorResponse("search", err)
	}

	matches = pathutil.ToRelativeMatches(matches, s.cfg.Project.Root)
	debug.LogMCP("search %q: %d matches\n", params.Pattern, len(matches))

	groups := results.GroupByFile(matches)
	return createJSONResponse(map[string]interface{}{
		"matches": matches,
		"files":   len(groups),
		"total":   len(matches),
	})
}

func (s *Server) handlePreviewReplace(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ReplaceParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("preview_replace", fmt.Errorf("invalid parameters: %w", err))
	}

	matches, err := s.runner.Search(ctx, params.Pattern, params.options())
	if err != nil {
		return createErrorResponse("preview_replace", err)
	}

	matches = pathutil.ToRelativeMatches(matches, s.cfg.Project.Root)
	diffs := results.Preview(params.Pattern, params.Replacement, matches)

	return createJSONResponse(map[string]interface{}{
		"diffs": diffs,
		"total": len(diffs),
	})
}

func (s *Server) handleReplace(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ReplaceParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("replace", fmt.Errorf("invalid parameters: %w", err))
	}

	matches, err := s.runner.Search(ctx, params.Pattern, params.options())
	if err != nil {
		return createErrorResponse("replace", err)
	}

	abs := pathutil.ToAbsoluteMatches(matches, s.cfg.Project.Root)
	res := replace.Apply(ctx, searchtypes.Plan{
		Pattern:     params.Pattern,
		Replacement: params.Replacement,
		Matches:     abs,
	})
	debug.LogMCP("replace %q -> %q: %d replaced, %d files, %d errors\n",
		params.Pattern, params.Replacement, res.Replaced, res.FilesChanged, len(res.Errors))

	fileErrors := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		fileErrors = append(fileErrors, fe.Error())
	}

	return createJSONResponse(map[string]interface{}{
		"replaced":      res.Replaced,
		"files_changed": res.FilesChanged,
		"errors":        fileErrors,
	})
}

// Run serves MCP requests on stdio until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	debug.LogMCP("MCP server starting on stdio\n")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
