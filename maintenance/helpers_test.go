package maintenance

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidyops/workmaid/config"
)

// failingMutator delegates to the real mutator, except that moves and
// deletions touching a path containing failOn fail.
type failingMutator struct {
	OSFileMutator
	failOn string
}

func (m failingMutator) Rename(oldPath, newPath string) error {
	if strings.Contains(oldPath, m.failOn) {
		return errors.New("device busy")
	}
	return m.OSFileMutator.Rename(oldPath, newPath)
}

func (m failingMutator) RemoveAll(path string) error {
	if strings.Contains(path, m.failOn) {
		return errors.New("device busy")
	}
	return m.OSFileMutator.RemoveAll(path)
}

// newTestConfig returns a fresh run configuration with the default policy
// values, safe to tweak per test.
func newTestConfig() *config.Config {
	return &config.Config{
		KeepDays: 3,
		Workspace: &config.WorkspaceConfig{
			MarkerDir:    "app",
			ArchivePaths: []string{"app", "README.md"},
		},
		Classifier: &config.ClassifierConfig{
			CacheDirName: "__pycache__",
			BackupSuffix: ".bak",
			LogExts:      []string{".log"},
			TempExts:     []string{".tmp", ".temp"},
		},
		Audit: &config.AuditConfig{
			HashExts: []string{".py", ".txt", ".md", ".json", ".cfg", ".ini", ".toml", ".yaml", ".yml"},
		},
	}
}

// newTestWorkspace creates a temp root containing the marker subdirectory.
func newTestWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "app"), 0755))
	return root
}

// writeTestFile creates a file (and its parents) with the given content.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// listTree returns every path under root relative to it, sorted by WalkDir.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, strings.ReplaceAll(rel, "\\", "/"))
		return nil
	})
	require.NoError(t, err)
	return paths
}
