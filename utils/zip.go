package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ZipPaths builds a zip archive of the given top-level paths under root and
// returns the archive bytes together with the paths that actually existed.
// Missing paths are silently skipped. The archive is assembled in memory so
// that writing it stays a single mutation.
func ZipPaths(root string, paths []string) ([]byte, []string, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var archived []string
	for _, p := range paths {
		full := filepath.Join(root, p)
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to stat archive path: %s, error: %w", full, err)
		}

		if info.IsDir() {
			err = filepath.WalkDir(full, func(path string, d fs.DirEntry, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if d.IsDir() {
					return nil
				}
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				return addZipEntry(zw, path, rel)
			})
		} else {
			err = addZipEntry(zw, full, p)
		}
		if err != nil {
			return nil, nil, err
		}

		archived = append(archived, p)
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), archived, nil
}

func addZipEntry(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file for archiving: %s, error: %w", path, err)
	}
	defer f.Close()

	// Zip entry names always use forward slashes
	w, err := zw.Create(strings.ReplaceAll(name, "\\", "/"))
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %s, error: %w", name, err)
	}

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to archive file: %s, error: %w", path, err)
	}
	return nil
}
