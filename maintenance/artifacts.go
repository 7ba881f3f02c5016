package maintenance

import (
	"strings"
)

// Artifact folder name prefixes. These are the sole identifiers the purger
// trusts, and every phase skips over folders carrying them.
const (
	AuditPrefix = "_audit_"
	StashPrefix = "_stash_"
)

// IsArtifactName reports whether a folder name follows the audit or stash
// naming convention.
func IsArtifactName(name string) bool {
	return strings.HasPrefix(name, AuditPrefix) || strings.HasPrefix(name, StashPrefix)
}
