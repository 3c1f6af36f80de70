package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestValidateLargeFile_SmallFileSkipsValidation(t *testing.T) {
	fv := NewFileValidator(1)
	path := writeFile(t, "tiny.go", []byte("not even close to valid go"))
	assert.NoError(t, fv.ValidateLargeFile(path))
}

func TestValidateLargeFile_LargeValidGoFilePasses(t *testing.T) {
	fv := NewFileValidator(1)
	content := "package sample\n\nfunc Noop() {}\n" + strings.Repeat("// padding line\n", 2000)
	path := writeFile(t, "big.go", []byte(content))
	assert.NoError(t, fv.ValidateLargeFile(path))
}

func TestValidateLargeFile_LargeBinaryDisguisedAsGoFails(t *testing.T) {
	fv := NewFileValidator(1)
	junk := make([]byte, 3*1024*1024)
	for i := range junk {
		junk[i] = byte(i % 256)
	}
	path := writeFile(t, "disguised.go", junk)
	assert.Error(t, fv.ValidateLargeFile(path))
}

func TestValidateLargeFile_MagicBytesMismatchFails(t *testing.T) {
	fv := NewFileValidator(1)
	content := append([]byte{0x89, 0x50, 0x4E, 0x47}, make([]byte, 2*1024*1024)...)
	path := writeFile(t, "fake.png", content)
	assert.Error(t, fv.ValidateLargeFile(path))
}
