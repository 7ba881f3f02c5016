package maintenance

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tidyops/workmaid/config"
	"github.com/tidyops/workmaid/maintenance/contracts"
	"github.com/tidyops/workmaid/maintenance/models"
	"github.com/tidyops/workmaid/utils"
)

// QuarantineMover relocates disposable entries into a timestamped stash
// folder, preserving each entry's path relative to the root. Moves are
// renames; nothing is ever deleted here.
type QuarantineMover struct {
	root       string
	cfg        *config.Config
	classifier *Classifier
	mutator    contracts.IFileMutator
}

// NewQuarantineMover builds the stash phase for one run.
func NewQuarantineMover(root string, cfg *config.Config, classifier *Classifier, mutator contracts.IFileMutator) *QuarantineMover {
	return &QuarantineMover{root: root, cfg: cfg, classifier: classifier, mutator: mutator}
}

// Quarantine moves every eligible entry into _stash_<token>. An eligible
// directory is moved wholesale without descending into it. A failed move is
// recorded and does not stop the remaining entries; the phase errors at the
// end when any move failed. When nothing is eligible, no stash folder is
// created and the returned dir is empty.
func (m *QuarantineMover) Quarantine(token string) (string, []models.MoveRecord, error) {
	eligible, err := m.collectEligible()
	if err != nil {
		return "", nil, err
	}
	if len(eligible) == 0 {
		return "", nil, nil
	}

	stashDir := utils.UniqueArtifactDir(m.root, StashPrefix+token)

	var records []models.MoveRecord
	failed := 0
	for _, rel := range eligible {
		src := filepath.Join(m.root, filepath.FromSlash(rel))
		dest := filepath.Join(stashDir, filepath.FromSlash(rel))

		record := models.MoveRecord{Source: src, Dest: dest}
		if err := m.moveEntry(src, dest); err != nil {
			record.Err = err.Error()
			failed++
		}
		records = append(records, record)
	}

	if failed > 0 {
		return stashDir, records, fmt.Errorf("%d of %d quarantine move(s) failed", failed, len(records))
	}
	return stashDir, records, nil
}

// collectEligible walks the root and asks the classifier about each entry.
// Eligibility is tested at the directory level first, so a matching cache
// folder is collected as a unit. Earlier audit/stash artifacts are skipped.
func (m *QuarantineMover) collectEligible() ([]string, error) {
	var eligible []string

	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == m.root {
			return nil
		}

		rel, err := filepath.Rel(m.root, path)
		if err != nil {
			return err
		}
		rel = strings.ReplaceAll(rel, "\\", "/")

		if d.IsDir() {
			if IsArtifactName(d.Name()) {
				return filepath.SkipDir
			}
			if m.classifier.IsEligibleForQuarantine(d.Name(), true) {
				eligible = append(eligible, rel)
				return filepath.SkipDir
			}
			return nil
		}

		if m.classifier.IsEligibleForQuarantine(d.Name(), false) {
			eligible = append(eligible, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace: %w", err)
	}

	return eligible, nil
}

// moveEntry mirrors the parent directory under the stash folder, then renames
// the entry into place.
func (m *QuarantineMover) moveEntry(src, dest string) error {
	if err := m.mutator.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create quarantine parent for %s: %w", dest, err)
	}
	if err := m.mutator.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}
	return nil
}
