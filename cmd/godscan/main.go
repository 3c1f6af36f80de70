// Command godscan walks a project tree, flags classes/methods/files that
// cross configurable structural thresholds ("god" objects), and suggests
// responsibility-cluster extractions for the god classes it finds.
//
// Grounded in the teacher's cmd/lci/main.go: the same urfave/cli App shape
// (global flags + config loading + signal-aware context + a single Action
// that drives the real work), adapted from "index a codebase and serve MCP/
// search" down to "analyze once and print a report."
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/godscan/internal/config"
	"github.com/standardbeagle/godscan/internal/engine"
	"github.com/standardbeagle/godscan/internal/parser"
	"github.com/standardbeagle/godscan/internal/parser/goparser"
	"github.com/standardbeagle/godscan/internal/parser/treesitter"
	"github.com/standardbeagle/godscan/internal/report"
	"github.com/standardbeagle/godscan/internal/version"
)

func newRegistry() *parser.Registry {
	parsers := []parser.Parser{goparser.New()}
	for _, lp := range treesitter.New() {
		parsers = append(parsers, lp)
	}
	return parser.NewRegistry(parsers...)
}

func loadConfig(c *cli.Context, root string) (config.RunConfig, error) {
	cfg, err := config.LoadKDL(root)
	if err != nil {
		return config.RunConfig{}, fmt.Errorf("load config: %w", err)
	}

	if v := c.Int("max-class-lines"); v > 0 {
		cfg.Thresholds.MaxClassLines = v
	}
	if v := c.Int("max-methods"); v > 0 {
		cfg.Thresholds.MaxMethods = v
	}
	if v := c.Int("max-method-lines"); v > 0 {
		cfg.Thresholds.MaxMethodLines = v
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Traversal.ExtraExcludes = append(cfg.Traversal.ExtraExcludes, excludes...)
	}
	if c.Bool("no-gitignore") {
		cfg.Traversal.RespectGitignore = false
	}
	if v := c.Int("parallelism"); v > 0 {
		cfg.Traversal.MaxParallelism = v
	}

	if err := config.ValidateThresholds(cfg.Thresholds); err != nil {
		return config.RunConfig{}, fmt.Errorf("invalid thresholds: %w", err)
	}
	return cfg, nil
}

func analyzeCommand(c *cli.Context) error {
	root := c.String("root")
	if c.NArg() > 0 {
		root = c.Args().First()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root path %q: %w", root, err)
	}

	cfg, err := loadConfig(c, absRoot)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	tree, rep, err := engine.Run(ctx, absRoot, newRegistry(), cfg)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	format := report.Format(c.String("format"))
	out, err := report.Render(tree, rep, report.Options{Format: format, MaxDepth: c.Int("max-depth"), Root: absRoot})
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	fmt.Fprintln(c.App.Writer, out)

	if !rep.Clean() {
		os.Exit(1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:                   "godscan",
		Usage:                  "Detect god files, god classes, and god methods in a codebase",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root to analyze",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, json",
				Value:   "text",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Maximum tree depth to render (0 = unlimited)",
			},
			&cli.IntFlag{
				Name:  "max-class-lines",
				Usage: "Override DetectionThresholds.maxClassLines",
			},
			&cli.IntFlag{
				Name:  "max-methods",
				Usage: "Override DetectionThresholds.maxMethods",
			},
			&cli.IntFlag{
				Name:  "max-method-lines",
				Usage: "Override DetectionThresholds.maxMethodLines",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Extra glob patterns to exclude, beyond .godscan.kdl and .gitignore",
			},
			&cli.BoolFlag{
				Name:  "no-gitignore",
				Usage: "Don't exclude paths matched by .gitignore",
			},
			&cli.IntFlag{
				Name:  "parallelism",
				Usage: "Max concurrent file analyses (0 = runtime.GOMAXPROCS)",
			},
		},
		Action: analyzeCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "godscan: %v\n", err)
		os.Exit(1)
	}
}
