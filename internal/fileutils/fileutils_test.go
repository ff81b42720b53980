package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-sorter/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "report.xlsx")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "missing.xlsx")))

	// Directories are not files.
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "missing")))

	testFile := filepath.Join(tmpDir, "statement.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "reports", "2024", "01")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Already existing directory is fine.
	assert.NoError(t, fileutils.EnsureDirectoryExists(tmpDir))
}

func TestListFilesWithExtension(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"report1.xlsx", "report2.xlsx", "statement.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("test"), 0600))
	}

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".xlsx")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = fileutils.ListFilesWithExtension(tmpDir, ".csv")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = fileutils.ListFilesWithExtension(tmpDir, ".pdf")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = fileutils.ListFilesWithExtension(filepath.Join(tmpDir, "missing"), ".xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist")
}

func TestListFilesWithExtensionCaseInsensitive(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "REPORT.XLSX"), []byte("test"), 0600))

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".xlsx")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestListFilesWithExtensionSkipsUnreadableDir(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "report.xlsx"), []byte("test"), 0600))

	foreign := filepath.Join(tmpDir, "foreign")
	require.NoError(t, os.MkdirAll(foreign, 0750))
	require.NoError(t, os.Chmod(foreign, 0000))
	t.Cleanup(func() {
		_ = os.Chmod(foreign, 0750)
	})

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".xlsx")
	require.NoError(t, err)
	assert.Contains(t, files, filepath.Join(tmpDir, "report.xlsx"))
}

func TestListFilesWithExtensionNested(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "archive")
	require.NoError(t, os.MkdirAll(nestedDir, 0750))

	for _, f := range []string{filepath.Join(tmpDir, "root.csv"), filepath.Join(nestedDir, "old.csv")} {
		require.NoError(t, os.WriteFile(f, []byte("test"), 0600))
	}

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".csv")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
