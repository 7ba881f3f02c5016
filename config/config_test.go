package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		KeepDays: DefaultConfig.KeepDays,
		Workspace: &WorkspaceConfig{
			MarkerDir:    DefaultConfig.Workspace.MarkerDir,
			ArchivePaths: DefaultConfig.Workspace.ArchivePaths,
		},
		Classifier: &ClassifierConfig{
			CacheDirName: DefaultConfig.Classifier.CacheDirName,
			BackupSuffix: DefaultConfig.Classifier.BackupSuffix,
		},
		Audit: &AuditConfig{HashExts: DefaultConfig.Audit.HashExts},
	}
}

func TestValidate_KeepDaysBounds(t *testing.T) {
	for _, days := range []int{MinKeepDays, MaxKeepDays, 3, 30} {
		cfg := validConfig()
		cfg.KeepDays = days
		assert.NoError(t, cfg.Validate(), "keep_days %d should be accepted", days)
	}

	for _, days := range []int{0, -1, MaxKeepDays + 1} {
		cfg := validConfig()
		cfg.KeepDays = days
		err := cfg.Validate()
		require.Error(t, err, "keep_days %d should be rejected", days)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestValidate_ExclusivePhaseFlags(t *testing.T) {
	cfg := validConfig()
	cfg.AuditOnly = true
	assert.NoError(t, cfg.Validate())

	cfg.StashOnly = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_RequiredNames(t *testing.T) {
	cfg := validConfig()
	cfg.Workspace.MarkerDir = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = validConfig()
	cfg.Classifier.CacheDirName = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = validConfig()
	cfg.Workspace = nil
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
