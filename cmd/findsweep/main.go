package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/standardbeagle/findsweep/internal/config"
	"github.com/standardbeagle/findsweep/internal/version"

	"github.com/urfave/cli/v2"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	// If root is specified and config path is default, look for config in root directory
	if rootFlag := c.String("root"); rootFlag != "" && configPath == config.DefaultConfigName {
		configPath = filepath.Join(rootFlag, config.DefaultConfigName)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	if binary := c.String("binary"); binary != "" {
		cfg.Search.Binary = binary
	}

	return cfg, nil
}

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(version.FullInfo())
	}

	app := &cli.App{
		Name:                   "findsweep",
		Usage:                  "Project-wide find and replace backed by ripgrep",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.DefaultConfigName,
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to search (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (e.g., --include '*.go' --include 'src/**/*.ts')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (e.g., --exclude 'vendor/**')",
			},
			&cli.StringFlag{
				Name:  "binary",
				Usage: "Path to the ripgrep binary (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Search for a pattern across the project",
				ArgsUsage: "<pattern>",
				Flags:     append(searchFlags(), outputFlags()...),
				Action:    searchCommand,
			},
			{
				Name:      "replace",
				Aliases:   []string{"rp"},
				Usage:     "Replace every occurrence of a pattern across matching files",
				ArgsUsage: "<pattern> <replacement>",
				Flags: append(searchFlags(),
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Usage:   "Preview changes without modifying files",
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Apply without asking for confirmation",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				),
				Action: replaceCommand,
			},
			{
				Name:      "watch",
				Aliases:   []string{"w"},
				Usage:     "Re-run a search whenever project files change",
				ArgsUsage: "<pattern>",
				Flags: append(searchFlags(),
					&cli.IntFlag{
						Name:  "debounce",
						Usage: "Quiet period in milliseconds before re-running (overrides config)",
					},
				),
				Action: watchCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Start MCP (Model Context Protocol) server with stdio transport",
				Action: mcpCommand,
			},
			{
				Name:  "config",
				Usage: "Configuration management commands",
				Subcommands: []*cli.Command{
					{
						Name:    "init",
						Aliases: []string{"i"},
						Usage:   "Initialize configuration file (" + config.DefaultConfigName + ")",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "output",
								Aliases: []string{"o"},
								Usage:   "Output file path (default: " + config.DefaultConfigName + ")",
							},
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite existing configuration file",
							},
						},
						Action: configInitCommand,
					},
					{
						Name:    "show",
						Aliases: []string{"s"},
						Usage:   "Show current configuration values",
						Action:  configShowCommand,
					},
					{
						Name:    "validate",
						Aliases: []string{"v"},
						Usage:   "Validate configuration file",
						Action:  configValidateCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// searchFlags are the matching options shared by search, replace, and watch
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "case-sensitive",
			Aliases: []string{"s"},
			Usage:   "Force case-sensitive matching (default is smart case)",
		},
		&cli.BoolFlag{
			Name:    "multiline",
			Aliases: []string{"U"},
			Usage:   "Allow the pattern to span lines",
		},
		&cli.IntFlag{
			Name:    "max-count",
			Aliases: []string{"m"},
			Usage:   "Max matches per file, 0 = unlimited",
		},
		&cli.StringFlag{
			Name:    "glob",
			Aliases: []string{"g"},
			Usage:   "Whitespace-separated include globs (e.g., '*.go *.md')",
		},
		&cli.StringFlag{
			Name:    "glob-exclude",
			Aliases: []string{"G"},
			Usage:   "Whitespace-separated exclude globs (e.g., 'vendor/**')",
		},
		&cli.StringSliceFlag{
			Name:  "rg-flag",
			Usage: "Pass an extra flag through to ripgrep (may repeat)",
		},
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "Search this path instead of the project root",
		},
	}
}

// outputFlags control search result rendering
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output as JSON",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "One match per line in path:line:col:text form",
		},
		&cli.BoolFlag{
			Name:  "columns",
			Usage: "Show column numbers in grouped output",
		},
	}
}
