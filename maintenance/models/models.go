package models

import (
	"time"
)

// MoveRecord is the per-item outcome of one quarantine move.
type MoveRecord struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
	Err    string `yaml:"error,omitempty"`
}

// Failed reports whether the move did not complete.
func (r MoveRecord) Failed() bool {
	return r.Err != ""
}

// SnapshotInfo describes one audit snapshot after creation.
type SnapshotInfo struct {
	Dir             string   `yaml:"dir"`
	FileCount       int      `yaml:"file_count"`
	TotalBytes      int64    `yaml:"total_bytes"`
	HashCount       int      `yaml:"hash_count"`
	DuplicateGroups int      `yaml:"duplicate_groups"`
	ArchivedPaths   []string `yaml:"archived_paths,omitempty"`
	UnreadablePaths []string `yaml:"unreadable_paths,omitempty"`
}

// PurgeResult describes what the retention purger removed.
type PurgeResult struct {
	RemovedCount int      `yaml:"removed_count"`
	RemovedDirs  []string `yaml:"removed_dirs,omitempty"`
	Failures     []string `yaml:"failures,omitempty"`
}

// RunReport is the end-of-run summary covering every enabled phase.
type RunReport struct {
	RunID       string       `yaml:"run_id"`
	Root        string       `yaml:"root"`
	Simulated   bool         `yaml:"simulated"`
	StartedAt   time.Time    `yaml:"started_at"`
	FinishedAt  time.Time    `yaml:"finished_at"`
	Snapshot    *SnapshotInfo `yaml:"snapshot,omitempty"`
	StashDir    string       `yaml:"stash_dir,omitempty"`
	MovedCount  int          `yaml:"moved_count"`
	Moves       []MoveRecord `yaml:"moves,omitempty"`
	PurgeResult *PurgeResult `yaml:"purge,omitempty"`
}
