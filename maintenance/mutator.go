package maintenance

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/tidyops/workmaid/constants/lipgloss"
	"github.com/tidyops/workmaid/maintenance/contracts"
)

// OSFileMutator performs real filesystem mutations.
type OSFileMutator struct{}

var _ contracts.IFileMutator = (*OSFileMutator)(nil)

func (OSFileMutator) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFileMutator) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (OSFileMutator) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (OSFileMutator) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// DryRunFileMutator logs every mutation it suppresses and touches nothing.
// All decision logic upstream still executes, so the printed preview matches
// what a real run would do.
type DryRunFileMutator struct {
	Suppressed int
}

var _ contracts.IFileMutator = (*DryRunFileMutator)(nil)

func (m *DryRunFileMutator) MkdirAll(path string, perm fs.FileMode) error {
	m.logf("would create directory %s", path)
	return nil
}

func (m *DryRunFileMutator) Rename(oldPath, newPath string) error {
	m.logf("would move %s -> %s", oldPath, newPath)
	return nil
}

func (m *DryRunFileMutator) RemoveAll(path string) error {
	m.logf("would delete %s", path)
	return nil
}

func (m *DryRunFileMutator) WriteFile(path string, data []byte, perm fs.FileMode) error {
	m.logf("would write %s (%d bytes)", path, len(data))
	return nil
}

func (m *DryRunFileMutator) logf(format string, args ...interface{}) {
	m.Suppressed++
	fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("[simulate] "+format, args...)))
}
