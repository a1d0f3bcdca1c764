package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/standardbeagle/findsweep/internal/debug"
	"github.com/standardbeagle/findsweep/internal/display"
	"github.com/standardbeagle/findsweep/internal/mcp"
	"github.com/standardbeagle/findsweep/internal/replace"
	"github.com/standardbeagle/findsweep/internal/results"
	"github.com/standardbeagle/findsweep/internal/runner"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
	"github.com/standardbeagle/findsweep/internal/watch"
	"github.com/standardbeagle/findsweep/pkg/pathutil"

	"github.com/urfave/cli/v2"
)

// optionsFromFlags builds search options from the shared matching flags
func optionsFromFlags(c *cli.Context) searchtypes.Options {
	opts := searchtypes.DefaultOptions()
	opts.CaseSensitive = c.Bool("case-sensitive")
	opts.Multiline = c.Bool("multiline")
	opts.MaxResults = c.Int("max-count")
	opts.ExtraFlags = c.StringSlice("rg-flag")
	opts.SearchPath = c.String("path")
	if glob := c.String("glob"); glob != "" {
		opts.IncludeGlobs = []string{glob}
	}
	if glob := c.String("glob-exclude"); glob != "" {
		opts.ExcludeGlobs = []string{glob}
	}
	return opts
}

func formatterFromFlags(c *cli.Context) *display.Formatter {
	format := "text"
	if c.Bool("json") {
		format = "json"
	} else if c.Bool("compact") {
		format = "compact"
	}
	return display.NewFormatter(display.FormatterOptions{
		Format:      format,
		ShowColumns: c.Bool("columns"),
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: findsweep search <pattern>")
	}
	pattern := c.Args().First()

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	matches, err := runner.New(cfg).Search(ctx, pattern, optionsFromFlags(c))
	if err != nil {
		return err
	}

	matches = pathutil.ToRelativeMatches(matches, cfg.Project.Root)
	fmt.Print(formatterFromFlags(c).FormatMatches(matches))
	return nil
}

func replaceCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("usage: findsweep replace <pattern> <replacement>")
	}
	pattern := c.Args().Get(0)
	replacement := c.Args().Get(1)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	matches, err := runner.New(cfg).Search(ctx, pattern, optionsFromFlags(c))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches found")
		return nil
	}

	rel := pathutil.ToRelativeMatches(matches, cfg.Project.Root)
	formatter := formatterFromFlags(c)

	if c.Bool("dry-run") {
		fmt.Print(formatter.FormatPreview(results.Preview(pattern, replacement, rel)))
		return nil
	}

	if !c.Bool("yes") {
		groups := results.GroupByFile(rel)
		fmt.Printf("Replace %d occurrences of %q with %q in %d files? [y/N] ",
			len(rel), pattern, replacement, len(groups))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	abs := pathutil.ToAbsoluteMatches(matches, cfg.Project.Root)
	res := replace.Apply(ctx, searchtypes.Plan{
		Pattern:     pattern,
		Replacement: replacement,
		Matches:     abs,
	})

	for _, fe := range res.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", fe)
	}
	fmt.Printf("Replaced %d occurrences in %d files\n", res.Replaced, res.FilesChanged)
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d files could not be modified", len(res.Errors))
	}
	return nil
}

func watchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: findsweep watch <pattern>")
	}
	pattern := c.Args().First()

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if debounce := c.Int("debounce"); debounce > 0 {
		cfg.Watch.DebounceMs = debounce
	}

	opts := optionsFromFlags(c)
	formatter := formatterFromFlags(c)
	r := runner.New(cfg)

	runOnce := func() {
		_, err := r.Start(pattern, opts, runner.Callbacks{
			OnComplete: func(matches []searchtypes.Match) {
				matches = pathutil.ToRelativeMatches(matches, cfg.Project.Root)
				fmt.Print(formatter.FormatMatches(matches))
			},
			OnError: func(err error) {
				fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		}
	}

	w, err := watch.New(cfg, runOnce)
	if err != nil {
		return err
	}
	if err := w.Start(cfg.Project.Root); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)\n", cfg.Project.Root)
	runOnce()

	ctx, cancel := signalContext()
	defer cancel()
	<-ctx.Done()

	r.Cancel()
	return w.Stop()
}

func mcpCommand(c *cli.Context) error {
	// MCP speaks JSON-RPC on stdout; any stray output corrupts the stream.
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return debug.Fatal("failed to load config: %v\n", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	debug.LogMCP("Starting MCP server with stdio transport...\n")
	if err := mcp.NewServer(cfg).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return debug.Fatal("MCP server error: %v\n", err)
	}
	return nil
}
