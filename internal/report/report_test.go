package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/godscan/internal/model"
)

func sampleTree() *model.TreeNode {
	file := &model.TreeNode{Kind: model.File, Name: "god.go", Path: "/proj/god.go", Depth: 1,
		FileVerdict: &model.GodFileVerdict{FilePath: "/proj/god.go", ViolationScore: 12}}
	return &model.TreeNode{Kind: model.Directory, Name: "proj", Path: "/proj", Children: []*model.TreeNode{file}}
}

func sampleReport() *model.Report {
	return &model.Report{
		TotalFiles:   1,
		TotalClasses: 1,
		GodFiles:     []model.GodFileVerdict{{FilePath: "/proj/god.go", ViolationScore: 12}},
		GodClasses: []model.ClassOutcome{{
			Class:   model.ClassMetrics{Name: "Kitchen", FilePath: "/proj/god.go"},
			Summary: "Kitchen has 10 methods (max 5)",
		}},
	}
}

func TestRender_Text(t *testing.T) {
	out, err := Render(sampleTree(), sampleReport(), Options{Format: Text})
	require.NoError(t, err)
	assert.Contains(t, out, "God files: 1")
	assert.Contains(t, out, "god.go")
	assert.Contains(t, out, "GOD FILE")
}

func TestRender_Markdown(t *testing.T) {
	out, err := Render(sampleTree(), sampleReport(), Options{Format: Markdown})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Analysis Report"))
	assert.Contains(t, out, "Kitchen")
}

func TestRender_JSON(t *testing.T) {
	out, err := Render(sampleTree(), sampleReport(), Options{Format: JSON})
	require.NoError(t, err)
	assert.Contains(t, out, `"total_files": 1`)
}

func TestRender_MaxDepthZeroIsUnlimited(t *testing.T) {
	out, err := Render(sampleTree(), sampleReport(), Options{Format: Text, MaxDepth: 0})
	require.NoError(t, err)
	assert.Contains(t, out, "god.go")
}
