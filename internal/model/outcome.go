package model

// GodFileVerdict is attached to a file's TreeNode only when the file itself
// exceeds a file-level threshold — it is absent (nil), not zero-valued,
// otherwise.
type GodFileVerdict struct {
	FilePath        string   `json:"file_path"`
	ClassCount      int      `json:"class_count"`
	TotalLines      int      `json:"total_lines"`
	ClassNames      []string `json:"class_names"`
	Violations      []string `json:"violations"`
	ViolationScore  int      `json:"violation_score"`
}

// GodMethodRecord describes a single method that crossed a god-method
// threshold, with enough context to locate it without walking the tree.
type GodMethodRecord struct {
	Method         MethodMetrics `json:"method"`
	ClassName      string        `json:"class_name"`
	FilePath       string        `json:"file_path"`
	Violations     []string      `json:"violations"`
	ViolationScore int           `json:"violation_score"`
}

// ResponsibilityCluster is a single proposed extraction from a god class: a
// cohesive subset of its methods, a suggested name for the extracted type,
// and the evidence behind the grouping.
type ResponsibilityCluster struct {
	SuggestedClassName string          `json:"suggested_class_name"`
	Methods            []MethodMetrics `json:"methods"`
	CohesionScore      float64         `json:"cohesion_score"`
	SharedDependencies []string        `json:"shared_dependencies"`
	Justification      string          `json:"justification"`
}

// ClassOutcome is the verdict and, when applicable, the proposed extraction
// plan for a single class.
type ClassOutcome struct {
	Class               ClassMetrics             `json:"class"`
	IsGodClass          bool                     `json:"is_god_class"`
	SuggestedExtractions []ResponsibilityCluster `json:"suggested_extractions"`
	GodMethods          []GodMethodRecord        `json:"god_methods"`
	Summary             string                   `json:"summary"`
}

// FileOutcome is the complete analysis result for one source file: its
// classes' metrics, a verdict per class, and — if the file itself tripped a
// file-level threshold — a GodFileVerdict. ParseNote carries a non-fatal
// per-file message when the file was skipped (over the configured size
// limit, or rejected by header validation) or could not be read or parsed
// (IoError/ParseError); it is empty on a clean parse.
type FileOutcome struct {
	FilePath   string         `json:"file_path"`
	Classes    []ClassMetrics `json:"classes"`
	FileVerdict *GodFileVerdict `json:"file_verdict,omitempty"`
	Outcomes   []ClassOutcome `json:"class_outcomes"`
	ParseNote  string         `json:"parse_note,omitempty"`
}
