package maintenance

import (
	"path/filepath"
	"strings"

	"github.com/tidyops/workmaid/config"
)

// Classifier decides whether a filesystem entry is eligible for quarantine.
// It never inspects file content; unknown entries are never eligible.
type Classifier struct {
	cacheDirName string
	backupSuffix string
	logExts      []string
	tempExts     []string
	includeLogs  bool
	includeTemp  bool
}

// NewClassifier builds the eligibility policy for one run.
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{
		cacheDirName: cfg.Classifier.CacheDirName,
		backupSuffix: strings.ToLower(cfg.Classifier.BackupSuffix),
		logExts:      lowerAll(cfg.Classifier.LogExts),
		tempExts:     lowerAll(cfg.Classifier.TempExts),
		includeLogs:  cfg.IncludeLogs,
		includeTemp:  cfg.IncludeTemp,
	}
}

// IsEligibleForQuarantine applies the rules independently; any match
// qualifies. Directories match only on the cache marker name.
func (c *Classifier) IsEligibleForQuarantine(name string, isDir bool) bool {
	if isDir {
		return name == c.cacheDirName
	}

	lower := strings.ToLower(name)
	if c.isBackupFile(lower) {
		return true
	}

	ext := filepath.Ext(lower)
	if c.includeLogs && contains(c.logExts, ext) {
		return true
	}
	if c.includeTemp && contains(c.tempExts, ext) {
		return true
	}

	return false
}

// isBackupFile matches the suffix both as the terminal extension ("notes.bak")
// and as an interior one ("notes.bak.txt").
func (c *Classifier) isBackupFile(lower string) bool {
	if c.backupSuffix == "" {
		return false
	}
	return strings.HasSuffix(lower, c.backupSuffix) ||
		strings.Contains(lower, c.backupSuffix+".")
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func lowerAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out
}
