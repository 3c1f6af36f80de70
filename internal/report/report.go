// Package report renders a model.Report and its enriched model.TreeNode for
// the three output shapes spec §6 requires: text, Markdown, and JSON.
//
// Grounded in the teacher's internal/display.TreeFormatter: the same
// options-struct-driven Format dispatch (text/compact/json) and the same
// prefix/branch recursive tree-walk for ASCII rendering, adapted from
// call-graph nodes annotated with edit-risk scores to project-tree nodes
// annotated with god-file/class verdicts.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/standardbeagle/godscan/internal/model"
	"github.com/standardbeagle/godscan/pkg/pathutil"
)

// Format selects one of the three renderings Render produces.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// Options controls tree rendering. MaxDepth <= 0 means unlimited. Root, when
// set, makes the text and Markdown renderers print file paths relative to
// it instead of absolute — the JSON rendering is left absolute, since it is
// meant for machine consumption rather than a human reading a terminal.
type Options struct {
	Format   Format
	MaxDepth int
	Root     string
}

// Render produces the requested rendering of tree and report together.
func Render(tree *model.TreeNode, rep *model.Report, opts Options) (string, error) {
	switch opts.Format {
	case JSON:
		return renderJSON(tree, rep)
	case Markdown:
		return renderMarkdown(tree, rep, opts), nil
	default:
		return renderText(tree, rep, opts), nil
	}
}

type jsonDocument struct {
	Tree   *model.TreeNode `json:"tree"`
	Report *model.Report   `json:"report"`
}

func renderJSON(tree *model.TreeNode, rep *model.Report) (string, error) {
	out, err := json.MarshalIndent(jsonDocument{Tree: tree, Report: rep}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}

func renderText(tree *model.TreeNode, rep *model.Report, opts Options) string {
	var sb strings.Builder
	sb.WriteString(summaryLines(rep, opts.Root))
	sb.WriteString("\n")
	writeNode(&sb, tree, "", true, true, opts.MaxDepth)
	return sb.String()
}

// relPath renders path relative to root for human-facing output, falling
// back to the absolute path when root is unset or path falls outside it.
func relPath(path, root string) string {
	if root == "" {
		return path
	}
	return pathutil.ToRelative(path, root)
}

func renderMarkdown(tree *model.TreeNode, rep *model.Report, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Analysis Report\n\n")
	fmt.Fprintf(&sb, "- Files analyzed: %d\n", rep.TotalFiles)
	fmt.Fprintf(&sb, "- Classes analyzed: %d\n", rep.TotalClasses)
	fmt.Fprintf(&sb, "- God files: %d\n", len(rep.GodFiles))
	fmt.Fprintf(&sb, "- God classes: %d\n", len(rep.GodClasses))
	fmt.Fprintf(&sb, "- Classes with god methods: %d\n", len(rep.ClassesWithGodMethods))
	fmt.Fprintf(&sb, "- God methods: %d\n\n", len(rep.GodMethods))

	if len(rep.GodFiles) > 0 {
		sb.WriteString("## God Files\n\n")
		for _, gf := range rep.GodFiles {
			fmt.Fprintf(&sb, "- `%s` — %d classes, %d lines (score %d): %s\n",
				relPath(gf.FilePath, opts.Root), gf.ClassCount, gf.TotalLines, gf.ViolationScore, strings.Join(gf.Violations, "; "))
		}
		sb.WriteString("\n")
	}

	if len(rep.GodClasses) > 0 {
		sb.WriteString("## God Classes\n\n")
		for _, co := range rep.GodClasses {
			fmt.Fprintf(&sb, "### %s (`%s`)\n\n%s\n\n", co.Class.Name, relPath(co.Class.FilePath, opts.Root), co.Summary)
			for _, cluster := range co.SuggestedExtractions {
				fmt.Fprintf(&sb, "- Suggested extraction **%s** (cohesion %.2f): %s\n",
					cluster.SuggestedClassName, cluster.CohesionScore, cluster.Justification)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func summaryLines(rep *model.Report, root string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Files analyzed: %d, classes analyzed: %d\n", rep.TotalFiles, rep.TotalClasses)
	fmt.Fprintf(&sb, "God files: %d | God classes: %d | Classes with god methods: %d | God methods: %d\n",
		len(rep.GodFiles), len(rep.GodClasses), len(rep.ClassesWithGodMethods), len(rep.GodMethods))
	if len(rep.FileNotes) > 0 {
		notes := make([]string, 0, len(rep.FileNotes))
		for path := range rep.FileNotes {
			notes = append(notes, relPath(path, root))
		}
		sort.Strings(notes)
		fmt.Fprintf(&sb, "Files with parse notes: %s\n", strings.Join(notes, ", "))
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *model.TreeNode, prefix string, isLast, isRoot bool, maxDepth int) {
	if n == nil {
		return
	}
	if maxDepth > 0 && n.Depth > maxDepth {
		return
	}

	branch := "→ "
	if !isRoot {
		if isLast {
			branch = "└─ "
		} else {
			branch = "├─ "
		}
	}

	sb.WriteString(prefix)
	sb.WriteString(branch)
	sb.WriteString(n.Name)
	sb.WriteString(annotation(n))
	sb.WriteString("\n")

	childPrefix := prefix + "  "
	if !isRoot && !isLast {
		childPrefix = prefix + "│ "
	}

	childCount := len(n.Children)
	for i, child := range n.Children {
		writeNode(sb, child, childPrefix, i == childCount-1, false, maxDepth)
	}
}

func annotation(n *model.TreeNode) string {
	if n.Kind != model.File {
		return ""
	}
	if n.FileVerdict != nil {
		return fmt.Sprintf(" [GOD FILE: score %d]", n.FileVerdict.ViolationScore)
	}
	if n.Outcome == nil {
		return ""
	}
	if n.Outcome.ParseNote != "" {
		return " [PARSE NOTE]"
	}
	for _, co := range n.Outcome.Outcomes {
		if co.IsGodClass {
			return " [has god class]"
		}
	}
	return ""
}
