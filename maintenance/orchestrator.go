package maintenance

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidyops/workmaid/config"
	"github.com/tidyops/workmaid/maintenance/contracts"
	"github.com/tidyops/workmaid/maintenance/models"
	"github.com/tidyops/workmaid/utils"
)

// Orchestrator executes the enabled phases in fixed order:
// Validate -> Audit? -> Stash? -> Purge? -> Report. Phases share only the run
// configuration and the mutator; each phase mints its own timestamp token at
// the moment it runs.
type Orchestrator struct {
	root     string
	cfg      *config.Config
	recorder *InventoryRecorder
	mover    *QuarantineMover
	purger   *RetentionPurger

	// Status, when set, receives a progress line as each phase starts.
	Status func(msg string)

	now func() time.Time
}

// NewOrchestrator wires the phases for one run against root.
func NewOrchestrator(root string, cfg *config.Config, mutator contracts.IFileMutator) *Orchestrator {
	classifier := NewClassifier(cfg)
	return &Orchestrator{
		root:     root,
		cfg:      cfg,
		recorder: NewInventoryRecorder(root, cfg, mutator),
		mover:    NewQuarantineMover(root, cfg, classifier, mutator),
		purger:   NewRetentionPurger(root, mutator),
		now:      time.Now,
	}
}

// Validate checks the workspace preconditions. It runs before any phase and
// aborts the entire run, with no output artifacts, when the root or its
// marker subdirectory is missing.
func (o *Orchestrator) Validate() error {
	info, err := os.Stat(o.root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: workspace root %s does not exist", ErrPrecondition, o.root)
	}

	marker := filepath.Join(o.root, o.cfg.Workspace.MarkerDir)
	info, err = os.Stat(marker)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: marker subdirectory %s not found under %s",
			ErrPrecondition, o.cfg.Workspace.MarkerDir, o.root)
	}

	return nil
}

// Run executes the enabled phases and returns the run report. An error in
// audit or stash skips the later phases; whatever already happened stays done
// and is reflected in the report.
func (o *Orchestrator) Run() (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:     uuid.NewString(),
		Root:      o.root,
		Simulated: o.cfg.Simulate,
		StartedAt: o.now(),
	}
	defer func() { report.FinishedAt = o.now() }()

	if err := o.Validate(); err != nil {
		return report, err
	}

	if !o.cfg.StashOnly {
		o.status("auditing workspace")
		info, err := o.recorder.CreateSnapshot(utils.TimestampToken(o.now()))
		report.Snapshot = info
		if err != nil {
			return report, err
		}
	}

	if !o.cfg.AuditOnly {
		o.status("stashing disposable artifacts")
		stashDir, records, err := o.mover.Quarantine(utils.TimestampToken(o.now()))
		report.StashDir = stashDir
		report.Moves = records
		for _, rec := range records {
			if !rec.Failed() {
				report.MovedCount++
			}
		}
		if err != nil {
			return report, err
		}
	}

	if o.cfg.Purge {
		o.status("purging expired artifact folders")
		result, err := o.purger.Purge(o.cfg.KeepDays)
		report.PurgeResult = result
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (o *Orchestrator) status(msg string) {
	if o.Status != nil {
		o.Status(msg)
	}
}
