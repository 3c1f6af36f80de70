// Package treebuilder walks a root path into an immutable project tree
// (spec §4.1), excluding build-artifact directories and files the parser
// registry doesn't recognize.
//
// Grounded in the teacher's directory-walk/glob-matching style (the exclude
// matching here mirrors internal/indexing/watcher.go's doublestar.Match
// usage) combined with its BuildArtifactDetector and GitignoreParser, which
// are carried over unchanged in spirit to grow the exclusion set instead of
// re-implementing build-output detection from scratch.
package treebuilder

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/godscan/internal/config"
	"github.com/standardbeagle/godscan/internal/errs"
	"github.com/standardbeagle/godscan/internal/model"
)

// defaultDirExclusions is the fixed, case-insensitive exclusion set from
// §4.1. It applies regardless of configuration.
var defaultDirExclusions = map[string]struct{}{
	"bin": {}, "obj": {}, ".git": {}, ".vs": {}, "node_modules": {},
	"packages": {}, ".idea": {}, "target": {}, "build": {}, "dist": {},
}

// ExtensionSet reports which file extensions (including the leading dot)
// the parser registry recognizes.
type ExtensionSet interface {
	SupportsExtension(ext string) bool
}

// Build walks root depth-first and returns the TreeNode rooted there. Per
// §4.1, a root that doesn't exist fails with errs.PathNotFound; any other
// per-directory read failure is silently skipped rather than propagated.
func Build(root string, extensions ExtensionSet, opts config.TraversalOptions) (*model.TreeNode, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errs.NewPathNotFound(root, err)
	}

	excludes := buildExclusionMatcher(root, opts)

	if !info.IsDir() {
		return &model.TreeNode{
			Kind:  model.File,
			Name:  filepath.Base(root),
			Path:  root,
			Depth: 0,
		}, nil
	}

	return walkDir(root, root, 0, extensions, excludes), nil
}

// exclusionMatcher decides, given an absolute path and whether it names a
// directory, whether the TreeBuilder should omit it.
type exclusionMatcher struct {
	root      string
	globs     []string
	gitignore *config.GitignoreParser
}

func buildExclusionMatcher(root string, opts config.TraversalOptions) *exclusionMatcher {
	m := &exclusionMatcher{root: root}

	artifactPatterns := config.NewBuildArtifactDetector(root).DetectOutputDirectories()
	m.globs = config.DeduplicatePatterns(append(artifactPatterns, opts.ExtraExcludes...))

	if opts.RespectGitignore {
		gp := config.NewGitignoreParser()
		_ = gp.LoadGitignore(root) // absence of .gitignore is not an error
		m.gitignore = gp
	}

	return m
}

func (m *exclusionMatcher) excludes(path string, isDir bool) bool {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range m.globs {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}

	if m.gitignore != nil && m.gitignore.ShouldIgnore(rel, isDir) {
		return true
	}

	return false
}

func walkDir(root, dirPath string, depth int, extensions ExtensionSet, excludes *exclusionMatcher) *model.TreeNode {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		// An unreadable directory is silently omitted, per §4.1's contract
		// that the TreeBuilder never fails below the root.
		entries = nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	node := &model.TreeNode{
		Kind:  model.Directory,
		Name:  filepath.Base(dirPath),
		Path:  dirPath,
		Depth: depth,
	}

	var children []*model.TreeNode
	for _, entry := range entries {
		name := entry.Name()
		childPath := filepath.Join(dirPath, name)

		if entry.IsDir() {
			if _, excluded := defaultDirExclusions[strings.ToLower(name)]; excluded {
				continue
			}
			if excludes.excludes(childPath, true) {
				continue
			}
			child := walkDir(root, childPath, depth+1, extensions, excludes)
			child.Parent = node
			children = append(children, child)
			continue
		}

		ext := filepath.Ext(name)
		if !extensions.SupportsExtension(ext) {
			continue
		}
		if excludes.excludes(childPath, false) {
			continue
		}

		child := &model.TreeNode{
			Kind:   model.File,
			Name:   name,
			Path:   childPath,
			Depth:  depth + 1,
			Parent: node,
		}
		children = append(children, child)
	}

	node.Children = children
	return node
}
