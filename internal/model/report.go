package model

// Report is the flattened, caller-facing summary of one analysis run: the
// counts from §6 plus the enumerated lists behind each count. It is built
// once, in a single sequential walk of the enriched tree, after phase 2
// completes.
type Report struct {
	TotalFiles   int `json:"total_files"`
	TotalClasses int `json:"total_classes"`

	GodFiles              []GodFileVerdict  `json:"god_files"`
	GodClasses            []ClassOutcome    `json:"god_classes"`
	ClassesWithGodMethods  []ClassOutcome   `json:"classes_with_god_methods"`
	HealthyClasses         []ClassOutcome   `json:"healthy_classes"`
	GodMethods             []GodMethodRecord `json:"god_methods"`

	// FileNotes carries the FilePath/ParseNote pairs for files whose
	// parsing was non-fatally degraded (IoError/ParseError). These never
	// affect the exit status by themselves.
	FileNotes map[string]string `json:"file_notes,omitempty"`
}

// Clean reports whether the run found zero god files, god classes, and god
// methods — the sole determinant of the caller-facing exit status per §6.
// Parser errors recorded in FileNotes do not affect this.
func (r *Report) Clean() bool {
	return len(r.GodFiles) == 0 && len(r.GodClasses) == 0 && len(r.GodMethods) == 0
}
