package state

import "math"

// SchemaVersion marks state files whose capitals are on the $1000 base.
const SchemaVersion = "v4_1000"

const (
	oldCapitalBase = 1500
	newCapitalBase = 1000
)

// MigrateCapital rebases strategy capital from the old $1500 base to
// $1000, preserving accumulated PnL: new = 1000 + (old - 1500). Only
// capitals clearly on the old base (within [1400, 1600]) are touched,
// so already-migrated or heavily diverged books pass through untouched.
// Returns true when anything changed; the caller persists.
func MigrateCapital(doc *Document, names []string) bool {
	if doc.Schema == SchemaVersion {
		return false
	}

	migrated := false
	for _, name := range names {
		entry, ok := doc.Strategies[name]
		if !ok {
			continue
		}
		if entry.Capital >= 1400 && entry.Capital <= 1600 {
			entry.Capital = roundCents(newCapitalBase + (entry.Capital - oldCapitalBase))
			migrated = true
		}
	}
	if migrated {
		doc.Schema = SchemaVersion
	}
	return migrated
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
