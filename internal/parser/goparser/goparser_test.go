package goparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/godscan/internal/errs"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile_EmptyFileYieldsEmptyList(t *testing.T) {
	path := writeFile(t, "")
	classes, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestParseFile_NoDecisionKeywordsComplexityOne(t *testing.T) {
	src := `package sample

type Greeter struct{}

func (g *Greeter) Greet() string {
	return "hello"
}
`
	path := writeFile(t, src)
	classes, err := New().ParseFile(path)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Methods, 1)
	assert.Equal(t, 1, classes[0].Methods[0].Complexity)
}

func TestParseFile_ClassComplexityIsSumOfMethods(t *testing.T) {
	src := `package sample

type Calc struct{}

func (c *Calc) A(x int) int {
	if x > 0 {
		return x
	}
	return -x
}

func (c *Calc) B(x int) int {
	if x > 0 && x < 10 {
		return 1
	}
	return 0
}
`
	path := writeFile(t, src)
	classes, err := New().ParseFile(path)
	require.NoError(t, err)
	require.Len(t, classes, 1)

	sum := 0
	for _, m := range classes[0].Methods {
		sum += m.Complexity
	}
	assert.Equal(t, sum, classes[0].Complexity)
}

func TestParseFile_ParameterCountAndTypes(t *testing.T) {
	src := `package sample

type Service struct{}

func (s *Service) Do(a int, b string, c ...float64) {}
`
	path := writeFile(t, src)
	classes, err := New().ParseFile(path)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Methods, 1)
	assert.Len(t, classes[0].Methods[0].Parameters, 3)
}

func TestParseFile_StructWithNoMethodsYieldsEmptyMethodList(t *testing.T) {
	src := `package sample

type Plain struct {
	A int
	B string
}
`
	path := writeFile(t, src)
	classes, err := New().ParseFile(path)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Empty(t, classes[0].Methods)
	assert.Equal(t, 2, classes[0].PropertyCount)
}

func TestParseFile_UnreadableFileIsIoError(t *testing.T) {
	_, err := New().ParseFile(filepath.Join(t.TempDir(), "missing.go"))
	var ioErr *errs.IoError
	assert.ErrorAs(t, err, &ioErr)
}
