package snapshot

import (
	"sort"
	"strings"
)

type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// RootPath is the path of the scanned root inside a snapshot.
const RootPath = "."

// RootSentinel is the parent_directory of a root that is itself a filesystem root.
const RootSentinel = "<root>"

// Entry is one scanned filesystem object. Field order is the serialized order.
type Entry struct {
	Name            string `json:"name" yaml:"name"`
	Path            string `json:"path" yaml:"path"`
	ParentDirectory string `json:"parent_directory" yaml:"parent_directory"`
	Type            Kind   `json:"type" yaml:"type"`
	SizeBytes       int64  `json:"size_bytes" yaml:"size_bytes"`
}

func (e Entry) IsRoot() bool { return e.Path == RootPath }

func (e Entry) IsDir() bool { return e.Type == KindDirectory }

// Depth is the number of separators in Path; the root and its children share depth 0.
func (e Entry) Depth() int {
	if e.IsRoot() {
		return 0
	}
	return strings.Count(e.Path, "/")
}

// Less orders the root first, then by depth, then by path.
func Less(a, b Entry) bool {
	if a.IsRoot() != b.IsRoot() {
		return a.IsRoot()
	}
	if da, db := a.Depth(), b.Depth(); da != db {
		return da < db
	}
	return a.Path < b.Path
}

// Sort puts entries into snapshot order in place.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// TotalFileSize sums the sizes of all file entries.
func TotalFileSize(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		if e.Type == KindFile {
			total += e.SizeBytes
		}
	}
	return total
}

// ByPath indexes entries by their path.
func ByPath(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Path] = e
	}
	return m
}
