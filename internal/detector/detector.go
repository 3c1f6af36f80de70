// Package detector holds the pure threshold predicates of spec §4.3: no I/O,
// no concurrency, no state beyond the Thresholds passed in. Grounded in the
// structure of the teacher's own rule-style checkers (see
// other_examples' god_object_rule.go and max_cyclomatic_complexity.go),
// generalized from "one rule, one file" into three predicates sharing a
// single Thresholds record.
package detector

import (
	"fmt"

	"github.com/standardbeagle/godscan/internal/model"
)

// IsGodClass reports whether a class trips any class-level threshold,
// together with the human-readable violations behind the verdict.
func IsGodClass(c model.ClassMetrics, t model.Thresholds) (bool, []string) {
	var violations []string
	if c.Lines > t.MaxClassLines {
		violations = append(violations, fmt.Sprintf("class has %d lines (max %d)", c.Lines, t.MaxClassLines))
	}
	if c.MethodCount > t.MaxMethods {
		violations = append(violations, fmt.Sprintf("class has %d methods (max %d)", c.MethodCount, t.MaxMethods))
	}
	if c.Complexity > t.MaxClassComplexity {
		violations = append(violations, fmt.Sprintf("class complexity is %d (max %d)", c.Complexity, t.MaxClassComplexity))
	}
	return len(violations) > 0, violations
}

// IsGodMethod reports whether a method trips any method-level threshold, its
// violations, and its violation score per §4.3's weighted formula.
func IsGodMethod(m model.MethodMetrics, t model.Thresholds) (bool, []string, int) {
	var violations []string
	score := 0

	if m.Lines > t.MaxMethodLines {
		violations = append(violations, fmt.Sprintf("method has %d lines (max %d)", m.Lines, t.MaxMethodLines))
		score += (m.Lines - t.MaxMethodLines) * 1
	}
	if m.Complexity > t.MaxMethodComplexity {
		violations = append(violations, fmt.Sprintf("method complexity is %d (max %d)", m.Complexity, t.MaxMethodComplexity))
		score += (m.Complexity - t.MaxMethodComplexity) * 2
	}
	if n := len(m.Parameters); n > t.MaxMethodParameters {
		violations = append(violations, fmt.Sprintf("method has %d parameters (max %d)", n, t.MaxMethodParameters))
		score += (n - t.MaxMethodParameters) * 1
	}

	return len(violations) > 0, violations, score
}

// GodFileVerdict classifies a file by its class list, returning nil when the
// file trips no file-level threshold (per §3, the verdict is absent, not
// zero-valued, on a healthy file).
func GodFileVerdict(filePath string, classes []model.ClassMetrics, t model.Thresholds) *model.GodFileVerdict {
	totalLines := 0
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		totalLines += c.Lines
		names = append(names, c.Name)
	}

	var violations []string
	score := 0

	if n := len(classes); n > t.MaxClassesPerFile {
		violations = append(violations, fmt.Sprintf("file has %d classes (max %d)", n, t.MaxClassesPerFile))
		score += (n - t.MaxClassesPerFile) * 5
	}
	if totalLines > t.MaxFileLines {
		violations = append(violations, fmt.Sprintf("file has %d lines (max %d)", totalLines, t.MaxFileLines))
		score += (totalLines - t.MaxFileLines) * 1
	}

	if len(violations) == 0 {
		return nil
	}

	return &model.GodFileVerdict{
		FilePath:       filePath,
		ClassCount:     len(classes),
		TotalLines:     totalLines,
		ClassNames:     names,
		Violations:     violations,
		ViolationScore: score,
	}
}
