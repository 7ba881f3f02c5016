package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// DigestFile reads path once and returns both its sha256 hex digest (the
// reproducible content fingerprint recorded in the hash inventory) and its
// xxh3 sum (used only for fast duplicate grouping).
func DigestFile(path string) (string, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file for hashing: %s, error: %w", path, err)
	}
	defer f.Close()

	sha := sha256.New()
	fp := xxh3.New()

	if _, err := io.Copy(io.MultiWriter(sha, fp), f); err != nil {
		return "", 0, fmt.Errorf("failed to read file for hashing: %s, error: %w", path, err)
	}

	return hex.EncodeToString(sha.Sum(nil)), fp.Sum64(), nil
}
