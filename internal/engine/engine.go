// Package engine orchestrates one analysis run (spec §4.5): build the
// project tree, parse and score every file in bounded parallel, then walk
// the enriched tree once, sequentially, into a flat Report.
//
// Grounded in the teacher's own bounded-parallelism idiom
// (internal/mcp/integration_test.go's errgroup.WithContext +
// g.SetLimit(n) + per-goroutine ctx.Done() check), generalized from a test
// harness into the production fan-out this package performs over files
// instead of test goroutines.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/godscan/internal/clusterer"
	"github.com/standardbeagle/godscan/internal/config"
	"github.com/standardbeagle/godscan/internal/detector"
	"github.com/standardbeagle/godscan/internal/errs"
	"github.com/standardbeagle/godscan/internal/model"
	"github.com/standardbeagle/godscan/internal/parser"
	"github.com/standardbeagle/godscan/internal/security"
	"github.com/standardbeagle/godscan/internal/treebuilder"
)

// validationThresholdKB is the file size above which FileValidator inspects
// a file's header before it reaches a Parser. Below it, a corrupt file is
// cheap enough that the parser's own error handling is sufficient.
const validationThresholdKB = 512

var fileValidator = security.NewFileValidator(validationThresholdKB)

// Run builds the project tree rooted at root and analyzes every file the
// registry recognizes, in parallel bounded by cfg.Traversal.MaxParallelism
// (runtime.GOMAXPROCS(0) when zero). Only a failure to build the tree at
// all (errs.PathNotFound) or a cancelled context abort the run; every
// per-file failure is recorded on that file's FileOutcome instead.
func Run(ctx context.Context, root string, registry *parser.Registry, cfg config.RunConfig) (*model.TreeNode, *model.Report, error) {
	tree, err := treebuilder.Build(root, registry, cfg.Traversal)
	if err != nil {
		return nil, nil, err
	}

	var files []*model.TreeNode
	tree.Walk(func(n *model.TreeNode) {
		if n.Kind == model.File {
			files = append(files, n)
		}
	})

	outcomes := make([]*model.FileOutcome, len(files))
	verdicts := make([]*model.GodFileVerdict, len(files))

	limit := cfg.Traversal.MaxParallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return errs.NewCancelled(gctx.Err())
			default:
			}
			outcome, verdict := processFile(file.Path, registry, cfg.Thresholds, cfg.Traversal.MaxFileSizeBytes)
			outcomes[i] = outcome
			verdicts[i] = verdict
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	enrichedByPath := make(map[string]*model.TreeNode, len(files))
	for i, file := range files {
		enrichedByPath[file.Path] = file.WithOutcome(outcomes[i], verdicts[i])
	}

	enrichedTree := rebuild(tree, enrichedByPath)
	report := buildReport(enrichedTree)

	return enrichedTree, report, nil
}

// rebuild replaces every File leaf with its enriched counterpart and every
// Directory ancestor with a copy carrying the rebuilt children, bottom-up,
// per model.TreeNode's copy-on-write contract.
func rebuild(n *model.TreeNode, enriched map[string]*model.TreeNode) *model.TreeNode {
	if n.Kind == model.File {
		if replacement, ok := enriched[n.Path]; ok {
			return replacement
		}
		return n
	}

	children := make([]*model.TreeNode, len(n.Children))
	for i, child := range n.Children {
		children[i] = rebuild(child, enriched)
	}
	return n.WithChildren(children)
}

func processFile(path string, registry *parser.Registry, thresholds model.Thresholds, maxFileSizeBytes int64) (*model.FileOutcome, *model.GodFileVerdict) {
	outcome := &model.FileOutcome{FilePath: path}

	p, ok := registry.Lookup(filepath.Ext(path))
	if !ok {
		return outcome, nil
	}

	if maxFileSizeBytes > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > maxFileSizeBytes {
			outcome.ParseNote = fmt.Sprintf("file exceeds configured max_file_size (%d bytes)", maxFileSizeBytes)
			return outcome, nil
		}
	}

	if err := fileValidator.ValidateLargeFile(path); err != nil {
		outcome.ParseNote = err.Error()
		return outcome, nil
	}

	classes, err := p.ParseFile(path)
	if err != nil {
		outcome.ParseNote = err.Error()
		return outcome, nil
	}
	outcome.Classes = classes

	for _, class := range classes {
		outcome.Outcomes = append(outcome.Outcomes, classify(path, class, thresholds))
	}

	verdict := detector.GodFileVerdict(path, classes, thresholds)
	outcome.FileVerdict = verdict
	return outcome, verdict
}

func classify(path string, class model.ClassMetrics, thresholds model.Thresholds) model.ClassOutcome {
	isGod, violations := detector.IsGodClass(class, thresholds)

	var godMethods []model.GodMethodRecord
	for _, m := range class.Methods {
		if isGodMethod, mv, score := detector.IsGodMethod(m, thresholds); isGodMethod {
			godMethods = append(godMethods, model.GodMethodRecord{
				Method:         m,
				ClassName:      class.Name,
				FilePath:       path,
				Violations:     mv,
				ViolationScore: score,
			})
		}
	}

	var extractions []model.ResponsibilityCluster
	var clusterNote string
	if isGod {
		extractions, clusterNote = clusterSafely(class, thresholds)
	}

	return model.ClassOutcome{
		Class:                class,
		IsGodClass:           isGod,
		SuggestedExtractions: extractions,
		GodMethods:           godMethods,
		Summary:              summarize(class, isGod, violations, len(godMethods), clusterNote),
	}
}

// clusterSafely isolates the clusterer from the rest of the run: spec §7's
// ClusteringFailure is recorded on the class's summary, not propagated,
// because a failed extraction suggestion for one god class must never
// abort an otherwise-clean analysis of the rest of the tree.
func clusterSafely(class model.ClassMetrics, thresholds model.Thresholds) (clusters []model.ResponsibilityCluster, note string) {
	defer func() {
		if r := recover(); r != nil {
			failure := errs.NewClusteringFailure(class.Name, fmt.Errorf("%v", r))
			note = failure.Error()
			clusters = nil
		}
	}()
	return clusterer.Cluster(class, thresholds), ""
}

func summarize(class model.ClassMetrics, isGod bool, violations []string, godMethodCount int, clusterNote string) string {
	var b strings.Builder
	if !isGod {
		fmt.Fprintf(&b, "%s is within all class-level thresholds", class.Name)
	} else {
		fmt.Fprintf(&b, "%s: %s", class.Name, strings.Join(violations, "; "))
	}
	if godMethodCount > 0 {
		fmt.Fprintf(&b, "; %d method(s) exceed method-level thresholds", godMethodCount)
	}
	if clusterNote != "" {
		fmt.Fprintf(&b, "; %s", clusterNote)
	}
	return b.String()
}

func buildReport(tree *model.TreeNode) *model.Report {
	report := &model.Report{FileNotes: make(map[string]string)}

	tree.Walk(func(n *model.TreeNode) {
		if n.Kind != model.File {
			return
		}
		report.TotalFiles++

		if n.Outcome == nil {
			return
		}
		if n.Outcome.ParseNote != "" {
			report.FileNotes[n.Outcome.FilePath] = n.Outcome.ParseNote
		}
		report.TotalClasses += len(n.Outcome.Classes)

		if n.FileVerdict != nil {
			report.GodFiles = append(report.GodFiles, *n.FileVerdict)
		}

		for _, co := range n.Outcome.Outcomes {
			switch {
			case co.IsGodClass:
				report.GodClasses = append(report.GodClasses, co)
			case len(co.GodMethods) > 0:
				report.ClassesWithGodMethods = append(report.ClassesWithGodMethods, co)
			default:
				report.HealthyClasses = append(report.HealthyClasses, co)
			}
			report.GodMethods = append(report.GodMethods, co.GodMethods...)
		}
	})

	if len(report.FileNotes) == 0 {
		report.FileNotes = nil
	}
	return report
}
