package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampToken(t *testing.T) {
	token := TimestampToken(time.Date(2024, 3, 15, 9, 5, 42, 0, time.UTC))
	assert.Equal(t, "20240315_090542", token)

	// tokens sort lexically in time order
	later := TimestampToken(time.Date(2024, 3, 15, 9, 5, 43, 0, time.UTC))
	assert.Less(t, token, later)
}

func TestUniqueArtifactDir(t *testing.T) {
	root := t.TempDir()

	first := UniqueArtifactDir(root, "_stash_20240315_090542")
	assert.Equal(t, filepath.Join(root, "_stash_20240315_090542"), first)

	// same token within the same second gets numeric suffixes
	require.NoError(t, os.Mkdir(first, 0755))
	second := UniqueArtifactDir(root, "_stash_20240315_090542")
	assert.Equal(t, filepath.Join(root, "_stash_20240315_090542_1"), second)

	require.NoError(t, os.Mkdir(second, 0755))
	third := UniqueArtifactDir(root, "_stash_20240315_090542")
	assert.Equal(t, filepath.Join(root, "_stash_20240315_090542_2"), third)
}
