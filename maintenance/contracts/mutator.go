package contracts

import (
	"io/fs"
)

// IFileMutator is the single capability through which every phase touches the
// filesystem. Selecting the dry-run implementation once per run turns all
// mutations into logged no-ops while decision logic keeps executing.
type IFileMutator interface {
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	RemoveAll(path string) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
}
