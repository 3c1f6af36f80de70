package model

// Thresholds is the immutable configuration record that every detection and
// clustering decision is measured against. A zero-value Thresholds is not
// meaningful; callers should start from DefaultThresholds.
type Thresholds struct {
	MaxClassLines       int `json:"max_class_lines"`
	MaxMethods          int `json:"max_methods"`
	MaxClassComplexity  int `json:"max_class_complexity"`
	MaxMethodLines      int `json:"max_method_lines"`
	MaxMethodComplexity int `json:"max_method_complexity"`
	MaxMethodParameters int `json:"max_method_parameters"`
	MaxClassesPerFile   int `json:"max_classes_per_file"`
	MaxFileLines        int `json:"max_file_lines"`

	MinClusterSize   int     `json:"min_cluster_size"`
	ClusterThreshold float64 `json:"cluster_threshold"`
}

// DefaultThresholds returns the limits from spec.md §3, unmodified.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxClassLines:       300,
		MaxMethods:          20,
		MaxClassComplexity:  50,
		MaxMethodLines:      50,
		MaxMethodComplexity: 10,
		MaxMethodParameters: 5,
		MaxClassesPerFile:   3,
		MaxFileLines:        500,
		MinClusterSize:      3,
		ClusterThreshold:    0.7,
	}
}
