package treebuilder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/godscan/internal/config"
	"github.com/standardbeagle/godscan/internal/errs"
	"github.com/standardbeagle/godscan/internal/model"
)

type goOnlyExtensions struct{}

func (goOnlyExtensions) SupportsExtension(ext string) bool { return ext == ".go" }

func TestBuild_PathNotFound(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "missing"), goOnlyExtensions{}, config.TraversalOptions{})
	var pnf *errs.PathNotFound
	assert.ErrorAs(t, err, &pnf)
}

func TestBuild_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	root, err := Build(dir, goOnlyExtensions{}, config.TraversalOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.Directory, root.Kind)
	assert.Empty(t, root.Children)
}

func TestBuild_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	root, err := Build(file, goOnlyExtensions{}, config.TraversalOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.File, root.Kind)
	assert.Equal(t, file, root.Path)
}

func TestBuild_ExcludesBuildArtifactDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "x.go"), []byte("package x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))

	root, err := Build(dir, goOnlyExtensions{}, config.TraversalOptions{})
	require.NoError(t, err)

	var names []string
	root.Walk(func(n *model.TreeNode) { names = append(names, n.Name) })
	assert.Contains(t, names, "main.go")
	assert.NotContains(t, names, "node_modules")
}

func TestBuild_StableCaseInsensitiveSort(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Banana.go", "apple.go", "cherry.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package x\n"), 0o644))
	}

	root, err := Build(dir, goOnlyExtensions{}, config.TraversalOptions{})
	require.NoError(t, err)

	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"apple.go", "Banana.go", "cherry.go"}, names)
}

func TestBuild_SkipsUnrecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("hi"), 0o644))

	root, err := Build(dir, goOnlyExtensions{}, config.TraversalOptions{})
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}
