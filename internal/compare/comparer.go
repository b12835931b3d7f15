package compare

import (
	"fmt"
	"sort"
	"strings"

	"fsinventory/internal/snapshot"
)

type ChangeType string

const (
	Added   ChangeType = "ADDED"
	Resized ChangeType = "RESIZED"
	Removed ChangeType = "REMOVED"
)

type Change struct {
	Type     ChangeType
	Path     string
	OldEntry *snapshot.Entry
	NewEntry *snapshot.Entry
}

type CompareResult struct {
	Added   []Change
	Resized []Change
	Removed []Change
}

func (r *CompareResult) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Resized) > 0 || len(r.Removed) > 0
}

// Compare diffs two snapshots by path. The root entry is compared like any
// other directory, so any change below it also shows up as a root resize.
func Compare(oldEntries, newEntries []snapshot.Entry) *CompareResult {
	result := &CompareResult{
		Added:   make([]Change, 0),
		Resized: make([]Change, 0),
		Removed: make([]Change, 0),
	}

	oldByPath := snapshot.ByPath(oldEntries)
	newByPath := snapshot.ByPath(newEntries)

	for path, newEntry := range newByPath {
		newCopy := newEntry
		oldEntry, exists := oldByPath[path]
		if !exists {
			result.Added = append(result.Added, Change{Type: Added, Path: path, NewEntry: &newCopy})
			continue
		}
		if oldEntry.SizeBytes != newEntry.SizeBytes || oldEntry.Type != newEntry.Type {
			oldCopy := oldEntry
			result.Resized = append(result.Resized, Change{
				Type:     Resized,
				Path:     path,
				OldEntry: &oldCopy,
				NewEntry: &newCopy,
			})
		}
	}

	for path, oldEntry := range oldByPath {
		if _, exists := newByPath[path]; !exists {
			oldCopy := oldEntry
			result.Removed = append(result.Removed, Change{Type: Removed, Path: path, OldEntry: &oldCopy})
		}
	}

	// Sort for deterministic output
	for _, changes := range [][]Change{result.Added, result.Resized, result.Removed} {
		sort.Slice(changes, func(i, j int) bool {
			return changes[i].Path < changes[j].Path
		})
	}

	return result
}

func FormatReport(result *CompareResult) string {
	if !result.HasChanges() {
		return "No changes detected."
	}

	var report strings.Builder
	report.WriteString("Changes detected:\n\n")

	if len(result.Added) > 0 {
		fmt.Fprintf(&report, "ADDED (%d):\n", len(result.Added))
		for _, change := range result.Added {
			fmt.Fprintf(&report, "  + %s (%s, %d bytes)\n",
				change.Path, change.NewEntry.Type, change.NewEntry.SizeBytes)
		}
		report.WriteString("\n")
	}

	if len(result.Resized) > 0 {
		fmt.Fprintf(&report, "RESIZED (%d):\n", len(result.Resized))
		for _, change := range result.Resized {
			fmt.Fprintf(&report, "  ~ %s\n", change.Path)
			fmt.Fprintf(&report, "    Old: %s, %d bytes\n", change.OldEntry.Type, change.OldEntry.SizeBytes)
			fmt.Fprintf(&report, "    New: %s, %d bytes\n", change.NewEntry.Type, change.NewEntry.SizeBytes)
		}
		report.WriteString("\n")
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(&report, "REMOVED (%d):\n", len(result.Removed))
		for _, change := range result.Removed {
			fmt.Fprintf(&report, "  - %s (%s, %d bytes)\n",
				change.Path, change.OldEntry.Type, change.OldEntry.SizeBytes)
		}
		report.WriteString("\n")
	}

	fmt.Fprintf(&report, "Summary: %d added, %d resized, %d removed\n",
		len(result.Added), len(result.Resized), len(result.Removed))

	return report.String()
}
