package walker

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsinventory/internal/diag"
	"fsinventory/internal/fserr"
	"fsinventory/internal/snapshot"
)

func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, bytes.Repeat([]byte("x"), size), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
}

func paths(entries []snapshot.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestScan_ScenarioA(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{
		"a.txt":        10,
		"b.txt":        5,
		"subdir/c.txt": 7,
	})

	entries, err := Scan(tmpDir, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{".", "a.txt", "b.txt", "subdir", "subdir/c.txt"}, paths(entries))

	byPath := snapshot.ByPath(entries)
	assert.Equal(t, int64(22), byPath["."].SizeBytes)
	assert.Equal(t, int64(10), byPath["a.txt"].SizeBytes)
	assert.Equal(t, int64(5), byPath["b.txt"].SizeBytes)
	assert.Equal(t, int64(7), byPath["subdir"].SizeBytes)
	assert.Equal(t, int64(7), byPath["subdir/c.txt"].SizeBytes)

	assert.Equal(t, snapshot.KindDirectory, byPath["subdir"].Type)
	assert.Equal(t, snapshot.KindFile, byPath["subdir/c.txt"].Type)
	assert.Equal(t, "subdir", byPath["subdir/c.txt"].ParentDirectory)
	assert.Equal(t, ".", byPath["a.txt"].ParentDirectory)
	assert.Equal(t, filepath.Base(tmpDir), byPath["."].Name)
	assert.Equal(t, filepath.Base(filepath.Dir(tmpDir)), byPath["."].ParentDirectory)
}

func TestScan_Invariants(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{
		"top.bin":              100,
		"docs/readme.md":       40,
		"docs/img/logo.png":    300,
		"docs/img/raw/a.raw":   1,
		"src/main.go":          25,
		"src/pkg/util.go":      12,
		"src/pkg/util_test.go": 0,
	})
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755))

	entries, err := Scan(tmpDir, Options{})
	require.NoError(t, err)

	// root is unique and first
	require.NotEmpty(t, entries)
	assert.Equal(t, ".", entries[0].Path)
	roots := 0
	for _, e := range entries {
		if e.IsRoot() {
			roots++
		}
	}
	assert.Equal(t, 1, roots)

	// root size equals sum of file sizes
	assert.Equal(t, snapshot.TotalFileSize(entries), entries[0].SizeBytes)

	byPath := snapshot.ByPath(entries)
	assert.Len(t, byPath, len(entries), "paths must be unique")

	for _, e := range entries {
		if e.IsRoot() {
			continue
		}
		// every non-root parent is a scanned directory
		parent, ok := byPath[e.ParentDirectory]
		require.True(t, ok, "parent %q of %q missing", e.ParentDirectory, e.Path)
		assert.Equal(t, snapshot.KindDirectory, parent.Type)

		// directory sizes equal the sum of nested file sizes
		if e.IsDir() {
			var nested int64
			for _, f := range entries {
				if f.Type == snapshot.KindFile && strings.HasPrefix(f.Path, e.Path+"/") {
					nested += f.SizeBytes
				}
			}
			assert.Equal(t, nested, e.SizeBytes, "size of %s", e.Path)
		}
	}

	assert.Equal(t, int64(0), byPath["empty"].SizeBytes)

	// total order
	for i := 1; i < len(entries); i++ {
		assert.True(t, snapshot.Less(entries[i-1], entries[i]), "%s before %s", entries[i-1].Path, entries[i].Path)
	}
}

func TestScan_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{
		"z.txt":       3,
		"a/b/c/d.txt": 4,
		"a/e.txt":     5,
		"m/n.txt":     6,
	})

	first, err := Scan(tmpDir, Options{})
	require.NoError(t, err)
	second, err := Scan(tmpDir, Options{})
	require.NoError(t, err)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf1, first, snapshot.FormatJSON))
	require.NoError(t, snapshot.Encode(&buf2, second, snapshot.FormatJSON))
	assert.Equal(t, buf1.String(), buf2.String())
}

func TestScan_NonExistentDirectory(t *testing.T) {
	_, err := Scan("/nonexistent/directory", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserr.ErrNotFound))
}

func TestScan_RootIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	writeTree(t, tmpDir, map[string]int{"file.txt": 1})

	_, err := Scan(file, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserr.ErrNotFound))
}

func TestScan_EmptyDirectory(t *testing.T) {
	entries, err := Scan(t.TempDir(), Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].SizeBytes)
	assert.Equal(t, snapshot.KindDirectory, entries[0].Type)
}

func TestScan_SymlinkNotCounted(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{"real.txt": 50})
	if err := os.Symlink(filepath.Join(tmpDir, "real.txt"), filepath.Join(tmpDir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	entries, err := Scan(tmpDir, Options{})
	require.NoError(t, err)

	byPath := snapshot.ByPath(entries)
	require.Contains(t, byPath, "link.txt")
	assert.Equal(t, int64(0), byPath["link.txt"].SizeBytes)
	assert.Equal(t, int64(50), byPath["."].SizeBytes)
	assert.Equal(t, snapshot.TotalFileSize(entries), byPath["."].SizeBytes)
}

func TestScan_WithExclusions(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{
		"keep.txt":            1,
		"drop.tmp":            2,
		"node_modules/lib.js": 4,
		"src/main.go":         8,
		"src/gen/out.go":      16,
	})

	entries, err := Scan(tmpDir, Options{Exclude: []string{"*.tmp", "node_modules/", "src/gen"}})
	require.NoError(t, err)

	got := paths(entries)
	assert.Equal(t, []string{".", "keep.txt", "src", "src/main.go"}, got)
	assert.Equal(t, int64(9), entries[0].SizeBytes)
	assert.Equal(t, snapshot.TotalFileSize(entries), entries[0].SizeBytes)
}

func TestScan_VanishedFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{"gone.txt": 9, "stay.txt": 3})

	orig := infoOf
	t.Cleanup(func() { infoOf = orig })
	infoOf = func(d fs.DirEntry) (fs.FileInfo, error) {
		if d.Name() == "gone.txt" {
			return nil, &fs.PathError{Op: "lstat", Path: d.Name(), Err: fs.ErrNotExist}
		}
		return d.Info()
	}

	collector := diag.NewCollector()
	entries, err := Scan(tmpDir, Options{Reporter: collector})
	require.NoError(t, err)

	byPath := snapshot.ByPath(entries)
	assert.Equal(t, int64(0), byPath["gone.txt"].SizeBytes)
	assert.Equal(t, int64(3), byPath["stay.txt"].SizeBytes)
	assert.Equal(t, int64(3), byPath["."].SizeBytes)

	// the root size pass sees it first; the file query does not repeat it
	vanished := collector.OfKind(diag.Vanished)
	require.Len(t, vanished, 1)
	assert.Equal(t, "size", vanished[0].Op)
	assert.Equal(t, "gone.txt", filepath.Base(vanished[0].Path))
}

func TestScan_NestedProblemReportedOnce(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{"a/b/c/gone.txt": 9, "a/b/c/stay.txt": 3})

	orig := infoOf
	t.Cleanup(func() { infoOf = orig })
	infoOf = func(d fs.DirEntry) (fs.FileInfo, error) {
		if d.Name() == "gone.txt" {
			return nil, &fs.PathError{Op: "lstat", Path: d.Name(), Err: fs.ErrNotExist}
		}
		return d.Info()
	}

	collector := diag.NewCollector()
	entries, err := Scan(tmpDir, Options{Reporter: collector})
	require.NoError(t, err)

	// four size passes and the scan walk all reach gone.txt
	assert.Len(t, collector.OfKind(diag.Vanished), 1)
	byPath := snapshot.ByPath(entries)
	assert.Equal(t, int64(3), byPath["a"].SizeBytes)
	assert.Equal(t, int64(3), byPath["a/b/c"].SizeBytes)
}

func TestDirSize_ReportsEachPass(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{"x/gone.txt": 1})

	orig := infoOf
	t.Cleanup(func() { infoOf = orig })
	infoOf = func(d fs.DirEntry) (fs.FileInfo, error) {
		return nil, &fs.PathError{Op: "lstat", Path: d.Name(), Err: fs.ErrNotExist}
	}

	collector := diag.NewCollector()
	assert.Equal(t, int64(0), DirSize(tmpDir, Options{Reporter: collector}))
	assert.Equal(t, int64(0), DirSize(tmpDir, Options{Reporter: collector}))
	assert.Len(t, collector.OfKind(diag.Vanished), 2)
}

func TestDirSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]int{
		"a":       1,
		"x/b":     2,
		"x/y/c":   4,
		"x/y/z/d": 8,
	})

	assert.Equal(t, int64(15), DirSize(tmpDir, Options{}))
	assert.Equal(t, int64(14), DirSize(filepath.Join(tmpDir, "x"), Options{}))
	assert.Equal(t, int64(0), DirSize(t.TempDir(), Options{}))
}

func TestParentDisplayName(t *testing.T) {
	assert.Equal(t, snapshot.RootSentinel, parentDisplayName("/", "/", "/home/me"))
	assert.Equal(t, ".", parentDisplayName("photos", "/home/me/photos", "/home/me"))
	assert.Equal(t, "me", parentDisplayName("/home/me/photos", "/home/me/photos", "/home/me"))
	assert.Equal(t, "home", parentDisplayName("../me", "/home/me", "/home/me/photos"))
}

func TestShouldExclude(t *testing.T) {
	patterns := []string{"*.log", ".git/", "build/*.o"}

	assert.True(t, shouldExclude("app.log", false, patterns))
	assert.True(t, shouldExclude("deep/nested/app.log", false, patterns))
	assert.True(t, shouldExclude(".git", true, patterns))
	assert.True(t, shouldExclude("sub/.git", true, patterns))
	assert.False(t, shouldExclude(".git", false, patterns))
	assert.True(t, shouldExclude("build/main.o", false, patterns))
	assert.False(t, shouldExclude("other/main.o", false, patterns))
	assert.False(t, shouldExclude("main.go", false, patterns))
}
