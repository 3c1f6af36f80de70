package config

import (
	"fmt"

	"github.com/standardbeagle/godscan/internal/model"
)

// ValidateThresholds checks that a Thresholds record is self-consistent
// before it is handed to the engine. Unlike the teacher's Validator, there
// are no smart defaults to fill in here: DefaultThresholds already supplies
// every default, and LoadKDL only overwrites keys actually present in the
// configuration document.
func ValidateThresholds(t model.Thresholds) error {
	fields := map[string]int{
		"maxClassLines":       t.MaxClassLines,
		"maxMethods":          t.MaxMethods,
		"maxClassComplexity":  t.MaxClassComplexity,
		"maxMethodLines":      t.MaxMethodLines,
		"maxMethodComplexity": t.MaxMethodComplexity,
		"maxMethodParameters": t.MaxMethodParameters,
		"maxClassesPerFile":   t.MaxClassesPerFile,
		"maxFileLines":        t.MaxFileLines,
		"minClusterSize":      t.MinClusterSize,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	if t.ClusterThreshold < 0 || t.ClusterThreshold > 1 {
		return fmt.Errorf("clusterThreshold must be within [0,1], got %v", t.ClusterThreshold)
	}

	return nil
}
