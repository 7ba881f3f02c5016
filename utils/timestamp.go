package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the layout of every artifact folder token. The result
// sorts lexically in time order at second granularity.
const TimestampLayout = "20060102_150405"

// TimestampToken derives the artifact folder token from t.
func TimestampToken(t time.Time) string {
	return t.Format(TimestampLayout)
}

// UniqueArtifactDir joins root and name, appending a numeric suffix while a
// folder with that name already exists. Two phases running within the same
// second therefore never collide.
func UniqueArtifactDir(root, name string) string {
	path := filepath.Join(root, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(root, fmt.Sprintf("%s_%d", name, i))
	}
}
