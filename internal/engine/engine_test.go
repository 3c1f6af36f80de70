package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/godscan/internal/config"
	"github.com/standardbeagle/godscan/internal/errs"
	"github.com/standardbeagle/godscan/internal/model"
	"github.com/standardbeagle/godscan/internal/parser"
	"github.com/standardbeagle/godscan/internal/parser/goparser"
)

// TestMain ensures Run's errgroup fan-out leaves no goroutines behind,
// since processFile workers are the only concurrency in this package.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func registry() *parser.Registry {
	return parser.NewRegistry(goparser.New())
}

func writeGo(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRun_PathNotFound(t *testing.T) {
	_, _, err := Run(context.Background(), filepath.Join(t.TempDir(), "missing"), registry(), config.DefaultRunConfig())
	var pnf *errs.PathNotFound
	assert.ErrorAs(t, err, &pnf)
}

func TestRun_CleanRunWhenNoViolations(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "simple.go", `package sample

type Widget struct{}

func (w *Widget) Render() string { return "ok" }
`)

	_, report, err := Run(context.Background(), dir, registry(), config.DefaultRunConfig())
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.TotalFiles)
	assert.Equal(t, 1, report.TotalClasses)
}

func TestRun_GodClassDetectedAndClassified(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "god.go", `package sample

type Kitchen struct{}

func (k *Kitchen) A() {}
func (k *Kitchen) B() {}
func (k *Kitchen) C() {}
`)

	cfg := config.DefaultRunConfig()
	cfg.Thresholds.MaxMethods = 1

	_, report, err := Run(context.Background(), dir, registry(), cfg)
	require.NoError(t, err)
	require.Len(t, report.GodClasses, 1)
	assert.Equal(t, "Kitchen", report.GodClasses[0].Class.Name)
	assert.False(t, report.Clean())
}

func TestRun_ParseErrorRecordedAsFileNoteNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "broken.go", "package sample\nfunc ( {{{ \n")
	writeGo(t, dir, "ok.go", `package sample

type Widget struct{}

func (w *Widget) Render() string { return "ok" }
`)

	_, report, err := Run(context.Background(), dir, registry(), config.DefaultRunConfig())
	require.NoError(t, err)
	require.Len(t, report.FileNotes, 1)
	assert.Equal(t, 2, report.TotalFiles)
	assert.Equal(t, 1, report.TotalClasses)
}

func TestRun_MaxFileSizeBytesSkipsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "big.go", `package sample

type Widget struct{}

func (w *Widget) Render() string { return "ok" }
`)

	cfg := config.DefaultRunConfig()
	cfg.Traversal.MaxFileSizeBytes = 1

	_, report, err := Run(context.Background(), dir, registry(), cfg)
	require.NoError(t, err)
	require.Len(t, report.FileNotes, 1)
	assert.Equal(t, 0, report.TotalClasses)
}

func TestRebuild_PreservesDirectoryStructure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeGo(t, filepath.Join(dir, "sub"), "nested.go", `package sub

type Leaf struct{}
`)

	tree, _, err := Run(context.Background(), dir, registry(), config.DefaultRunConfig())
	require.NoError(t, err)

	var fileCount int
	tree.Walk(func(n *model.TreeNode) {
		if n.Kind == model.File {
			fileCount++
			assert.NotNil(t, n.Outcome)
		}
	})
	assert.Equal(t, 1, fileCount)
}
