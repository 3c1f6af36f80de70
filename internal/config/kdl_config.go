package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/godscan/internal/model"
)

// RunConfig is everything the engine needs beyond the root path itself: the
// detection thresholds and the traversal knobs that govern which files the
// TreeBuilder admits.
type RunConfig struct {
	Thresholds model.Thresholds
	Traversal  TraversalOptions
}

// TraversalOptions controls how the TreeBuilder walks the project tree,
// beyond the fixed build-artifact-directory exclusion set §4.1 specifies.
type TraversalOptions struct {
	RespectGitignore bool
	MaxParallelism   int
	ExtraExcludes    []string
	// MaxFileSizeBytes skips a file from analysis entirely once its size
	// exceeds this many bytes. Zero means no limit.
	MaxFileSizeBytes int64
}

// DefaultRunConfig returns the configuration used when no .godscan.kdl file
// is present: default Thresholds, gitignore respected, parallelism left at
// zero (the engine interprets zero as "use runtime.GOMAXPROCS").
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Thresholds: model.DefaultThresholds(),
		Traversal: TraversalOptions{
			RespectGitignore: true,
			MaxParallelism:   0,
		},
	}
}

// LoadKDL loads a `.godscan.kdl` file from projectRoot if present, starting
// from DefaultRunConfig and overwriting only the keys that appear in the
// document — per §6, missing keys use defaults and unknown keys are
// ignored. Returns the default config, unchanged, if no file exists.
func LoadKDL(projectRoot string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	kdlPath := filepath.Join(projectRoot, ".godscan.kdl")
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return cfg, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read .godscan.kdl: %w", err)
	}

	return parseKDL(string(content), cfg)
}

func parseKDL(content string, cfg RunConfig) (RunConfig, error) {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return cfg, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "DetectionThresholds":
			applyThresholds(&cfg.Thresholds, n)
		case "traversal":
			applyTraversal(&cfg.Traversal, n)
		}
	}

	return cfg, nil
}

func applyThresholds(t *model.Thresholds, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "maxClassLines":
			setInt(cn, &t.MaxClassLines)
		case "maxMethods":
			setInt(cn, &t.MaxMethods)
		case "maxClassComplexity":
			setInt(cn, &t.MaxClassComplexity)
		case "maxMethodLines":
			setInt(cn, &t.MaxMethodLines)
		case "maxMethodComplexity":
			setInt(cn, &t.MaxMethodComplexity)
		case "maxMethodParameters":
			setInt(cn, &t.MaxMethodParameters)
		case "maxClassesPerFile":
			setInt(cn, &t.MaxClassesPerFile)
		case "maxFileLines":
			setInt(cn, &t.MaxFileLines)
		case "minClusterSize":
			setInt(cn, &t.MinClusterSize)
		case "clusterThreshold":
			if v, ok := firstFloatArg(cn); ok {
				t.ClusterThreshold = v
			}
		}
	}
}

func applyTraversal(opts *TraversalOptions, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "respect_gitignore":
			if b, ok := firstBoolArg(cn); ok {
				opts.RespectGitignore = b
			}
		case "max_parallelism":
			setInt(cn, &opts.MaxParallelism)
		case "exclude":
			opts.ExtraExcludes = append(opts.ExtraExcludes, collectStringArgs(cn)...)
		case "max_file_size":
			if s, ok := firstStringArg(cn); ok {
				if size, err := parseSize(s); err == nil {
					opts.MaxFileSizeBytes = size
				}
			} else if v, ok := firstIntArg(cn); ok {
				opts.MaxFileSizeBytes = int64(v)
			}
		}
	}
}

func setInt(n *document.Node, target *int) {
	if v, ok := firstIntArg(n); ok {
		*target = v
	}
}

// Helper functions over the kdl-go document model.
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

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		log.Printf("WARNING: invalid float value for %q in KDL config, expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

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

// parseSize handles size strings like "10MB", "500KB", "1GB", letting a
// traversal { max_file_size ... } node express the skip threshold in human
// units rather than a raw byte count.
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var multiplier int64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, err
	}

	return num * multiplier, nil
}
