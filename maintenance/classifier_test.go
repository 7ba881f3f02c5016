package maintenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Directories are eligible only when named exactly as the cache marker,
// regardless of anything else.
func TestClassifier_CacheDirectories(t *testing.T) {
	classifier := NewClassifier(newTestConfig())

	assert.True(t, classifier.IsEligibleForQuarantine("__pycache__", true))

	assert.False(t, classifier.IsEligibleForQuarantine("__pycache", true))
	assert.False(t, classifier.IsEligibleForQuarantine("cache", true))
	assert.False(t, classifier.IsEligibleForQuarantine("src", true))
	assert.False(t, classifier.IsEligibleForQuarantine("app", true))

	// The cache name only matches directories
	assert.False(t, classifier.IsEligibleForQuarantine("__pycache__", false))
}

// Backup files are eligible independent of the include-logs/include-temp
// settings, both as terminal and interior suffix.
func TestClassifier_BackupFiles(t *testing.T) {
	classifier := NewClassifier(newTestConfig())

	assert.True(t, classifier.IsEligibleForQuarantine("notes.bak", false))
	assert.True(t, classifier.IsEligibleForQuarantine("notes.bak.txt", false))
	assert.True(t, classifier.IsEligibleForQuarantine("NOTES.BAK", false))

	assert.False(t, classifier.IsEligibleForQuarantine("notes.bakery", false))
	assert.False(t, classifier.IsEligibleForQuarantine("notes.txt", false))
	assert.False(t, classifier.IsEligibleForQuarantine("bak", false))
}

// Log and temp files are eligible only when explicitly enabled.
func TestClassifier_LogAndTempGating(t *testing.T) {
	cfg := newTestConfig()
	classifier := NewClassifier(cfg)

	assert.False(t, classifier.IsEligibleForQuarantine("debug.log", false))
	assert.False(t, classifier.IsEligibleForQuarantine("scratch.tmp", false))
	assert.False(t, classifier.IsEligibleForQuarantine("scratch.temp", false))

	cfg.IncludeLogs = true
	classifier = NewClassifier(cfg)
	assert.True(t, classifier.IsEligibleForQuarantine("debug.log", false))
	assert.True(t, classifier.IsEligibleForQuarantine("DEBUG.LOG", false))
	assert.False(t, classifier.IsEligibleForQuarantine("scratch.tmp", false))

	cfg.IncludeTemp = true
	classifier = NewClassifier(cfg)
	assert.True(t, classifier.IsEligibleForQuarantine("scratch.tmp", false))
	assert.True(t, classifier.IsEligibleForQuarantine("scratch.temp", false))
}

// Unknown entries fail closed.
func TestClassifier_UnknownEntriesIneligible(t *testing.T) {
	cfg := newTestConfig()
	cfg.IncludeLogs = true
	cfg.IncludeTemp = true
	classifier := NewClassifier(cfg)

	assert.False(t, classifier.IsEligibleForQuarantine("main.py", false))
	assert.False(t, classifier.IsEligibleForQuarantine("README.md", false))
	assert.False(t, classifier.IsEligibleForQuarantine("data.bin", false))
	assert.False(t, classifier.IsEligibleForQuarantine("", false))
}
