package maintenance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tidyops/workmaid/maintenance/contracts"
	"github.com/tidyops/workmaid/maintenance/models"
)

// RetentionPurger permanently deletes audit and stash folders older than the
// retention threshold. It is the only component allowed to delete anything,
// and it only ever touches folders matching the artifact naming convention.
type RetentionPurger struct {
	root    string
	mutator contracts.IFileMutator
	now     func() time.Time
}

// NewRetentionPurger builds the purge phase for one run.
func NewRetentionPurger(root string, mutator contracts.IFileMutator) *RetentionPurger {
	return &RetentionPurger{root: root, mutator: mutator, now: time.Now}
}

type retentionCandidate struct {
	name string
	mod  time.Time
}

// Purge removes every matching folder strictly older than now-keepDays,
// oldest first. A failure on one folder, whether reading its metadata or
// deleting it, does not block the others; failures are collected and surface
// as the phase error.
func (p *RetentionPurger) Purge(keepDays int) (*models.PurgeResult, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace root: %w", err)
	}

	cutoff := p.now().Add(-time.Duration(keepDays) * 24 * time.Hour)

	result := &models.PurgeResult{}
	var candidates []retentionCandidate
	for _, entry := range entries {
		if !entry.IsDir() || !IsArtifactName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: %v", filepath.Join(p.root, entry.Name()), err))
			continue
		}
		if info.ModTime().Before(cutoff) {
			candidates = append(candidates, retentionCandidate{name: entry.Name(), mod: info.ModTime()})
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].mod.Before(candidates[j].mod) })

	for _, c := range candidates {
		path := filepath.Join(p.root, c.name)
		if err := p.mutator.RemoveAll(path); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		result.RemovedCount++
		result.RemovedDirs = append(result.RemovedDirs, path)
	}

	if len(result.Failures) > 0 {
		return result, fmt.Errorf("failed to purge %d folder(s)", len(result.Failures))
	}
	return result, nil
}
