package maintenance

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidyops/workmaid/config"
	"github.com/tidyops/workmaid/maintenance/contracts"
	"github.com/tidyops/workmaid/maintenance/models"
	"github.com/tidyops/workmaid/utils"
)

// Extension categories reported in the snapshot summary.
var (
	archiveExts  = []string{".zip", ".unitypackage"}
	documentExts = []string{".pdf", ".txt", ".md"}
	sourceExts   = []string{".psd"}
	imageExts    = []string{".png", ".jpg", ".jpeg", ".webp"}
)

// InventoryRecorder walks the workspace root and produces an immutable,
// timestamped snapshot: a full file listing, a content-hash listing for
// text/config-like files, a duplicate report, a category summary, and an
// archive of the designated source paths. It never mutates the workspace it
// inventories; all snapshot writes go through the injected mutator.
type InventoryRecorder struct {
	root    string
	cfg     *config.Config
	mutator contracts.IFileMutator
}

// NewInventoryRecorder builds the audit phase for one run.
func NewInventoryRecorder(root string, cfg *config.Config, mutator contracts.IFileMutator) *InventoryRecorder {
	return &InventoryRecorder{root: root, cfg: cfg, mutator: mutator}
}

type inventoryEntry struct {
	rel  string
	size int64
	mod  time.Time
}

type duplicateGroup struct {
	fingerprint uint64
	paths       []string
}

// CreateSnapshot lists, hashes and archives the workspace into a new
// _audit_<token> folder. Unreadable files are skipped, recorded in the
// returned info, and fail the phase once the snapshot is complete.
func (r *InventoryRecorder) CreateSnapshot(token string) (*models.SnapshotInfo, error) {
	dir := utils.UniqueArtifactDir(r.root, AuditPrefix+token)

	entries, err := r.listFiles()
	if err != nil {
		return nil, err
	}

	hashRows, groups, unreadable := r.hashFiles(entries)

	archiveData, archived, err := utils.ZipPaths(r.root, r.cfg.Workspace.ArchivePaths)
	if err != nil {
		return nil, err
	}

	info := &models.SnapshotInfo{
		Dir:             dir,
		FileCount:       len(entries),
		HashCount:       len(hashRows),
		DuplicateGroups: len(groups),
		ArchivedPaths:   archived,
		UnreadablePaths: unreadable,
	}
	for _, e := range entries {
		info.TotalBytes += e.size
	}

	if err := r.mutator.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit folder: %s, error: %w", dir, err)
	}
	if err := r.mutator.WriteFile(filepath.Join(dir, "files.csv"), filesCSV(entries), 0644); err != nil {
		return nil, fmt.Errorf("failed to write file inventory: %w", err)
	}
	if err := r.mutator.WriteFile(filepath.Join(dir, "hashes.csv"), hashesCSV(hashRows), 0644); err != nil {
		return nil, fmt.Errorf("failed to write hash inventory: %w", err)
	}
	if len(groups) > 0 {
		if err := r.mutator.WriteFile(filepath.Join(dir, "duplicates.csv"), duplicatesCSV(groups), 0644); err != nil {
			return nil, fmt.Errorf("failed to write duplicate report: %w", err)
		}
	}
	summary, err := r.summaryJSON(entries, info)
	if err != nil {
		return nil, err
	}
	if err := r.mutator.WriteFile(filepath.Join(dir, "summary.json"), summary, 0644); err != nil {
		return nil, fmt.Errorf("failed to write snapshot summary: %w", err)
	}
	if err := r.mutator.WriteFile(filepath.Join(dir, "src_"+token+".zip"), archiveData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write source archive: %w", err)
	}

	if len(unreadable) > 0 {
		return info, fmt.Errorf("audit snapshot incomplete: %d unreadable file(s), first: %s",
			len(unreadable), unreadable[0])
	}
	return info, nil
}

// listFiles returns every file under root ordered by path, skipping audit and
// stash folders so a snapshot never inventories earlier artifacts.
func (r *InventoryRecorder) listFiles() ([]inventoryEntry, error) {
	var entries []inventoryEntry

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == r.root {
			return nil
		}
		if d.IsDir() {
			if IsArtifactName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		rel = strings.ReplaceAll(rel, "\\", "/")

		fileInfo, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %s, error: %w", rel, err)
		}

		entries = append(entries, inventoryEntry{rel: rel, size: fileInfo.Size(), mod: fileInfo.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })
	return entries, nil
}

type hashRow struct {
	rel    string
	sha256 string
}

// hashFiles digests every file whose extension is in the allow-list. The
// sha256 column is the reproducible inventory; the xxh3 fingerprint only
// groups byte-identical files into duplicate candidates.
func (r *InventoryRecorder) hashFiles(entries []inventoryEntry) ([]hashRow, []duplicateGroup, []string) {
	allowed := make(map[string]bool, len(r.cfg.Audit.HashExts))
	for _, ext := range r.cfg.Audit.HashExts {
		allowed[strings.ToLower(ext)] = true
	}

	type dupKey struct {
		fingerprint uint64
		size        int64
	}

	var rows []hashRow
	var unreadable []string
	byContent := make(map[dupKey][]string)

	for _, e := range entries {
		if !allowed[strings.ToLower(filepath.Ext(e.rel))] {
			continue
		}

		digest, fingerprint, err := utils.DigestFile(filepath.Join(r.root, filepath.FromSlash(e.rel)))
		if err != nil {
			unreadable = append(unreadable, e.rel)
			continue
		}

		rows = append(rows, hashRow{rel: e.rel, sha256: digest})
		key := dupKey{fingerprint: fingerprint, size: e.size}
		byContent[key] = append(byContent[key], e.rel)
	}

	var groups []duplicateGroup
	for key, paths := range byContent {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups = append(groups, duplicateGroup{fingerprint: key.fingerprint, paths: paths})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].fingerprint < groups[j].fingerprint })

	return rows, groups, unreadable
}

func filesCSV(entries []inventoryEntry) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"path", "size", "modified"})
	for _, e := range entries {
		_ = w.Write([]string{e.rel, strconv.FormatInt(e.size, 10), e.mod.Format(time.RFC3339)})
	}
	w.Flush()
	return buf.Bytes()
}

func hashesCSV(rows []hashRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"path", "sha256"})
	for _, row := range rows {
		_ = w.Write([]string{row.rel, row.sha256})
	}
	w.Flush()
	return buf.Bytes()
}

func duplicatesCSV(groups []duplicateGroup) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"fingerprint", "path"})
	for _, g := range groups {
		for _, p := range g.paths {
			_ = w.Write([]string{fmt.Sprintf("%016x", g.fingerprint), p})
		}
	}
	w.Flush()
	return buf.Bytes()
}

func (r *InventoryRecorder) summaryJSON(entries []inventoryEntry, info *models.SnapshotInfo) ([]byte, error) {
	counts := map[string]int{}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.rel))
		switch {
		case contains(archiveExts, ext):
			counts["archives"]++
		case contains(documentExts, ext):
			counts["documents"]++
		case contains(sourceExts, ext):
			counts["sources"]++
		case contains(imageExts, ext):
			counts["images"]++
		}
	}

	summary := map[string]interface{}{
		"generated_at":          time.Now().Format(time.RFC3339),
		"file_count":            info.FileCount,
		"total_bytes":           info.TotalBytes,
		"archive_count":         counts["archives"],
		"document_count":        counts["documents"],
		"source_count":          counts["sources"],
		"image_count":           counts["images"],
		"hash_count":            info.HashCount,
		"duplicate_group_count": info.DuplicateGroups,
		"unreadable_count":      len(info.UnreadablePaths),
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot summary: %w", err)
	}
	return data, nil
}
