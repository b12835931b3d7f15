// Package walker produces directory snapshots: recursive size aggregation and
// the top-down tree scan built on it.
package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fsinventory/internal/diag"
	"fsinventory/internal/fserr"
	"fsinventory/internal/snapshot"
)

// Options configure DirSize and Scan.
type Options struct {
	// Exclude holds skip patterns: "name/" skips directories, plain globs match
	// base names, globs containing "/" match slash-separated relative paths.
	Exclude []string
	// Reporter receives per-item diagnostics. Nil discards them.
	Reporter diag.Reporter
}

// infoOf measures a listed entry. Tests swap it to simulate files vanishing.
var infoOf = func(d fs.DirEntry) (fs.FileInfo, error) {
	return d.Info()
}

// DirSize returns the total size of every regular, non-symlink file below dir.
// Files that vanish before they are measured are skipped with a diagnostic.
func DirSize(dir string, opts Options) int64 {
	return dirSize(dir, ".", opts.Exclude, diag.OrDiscard(opts.Reporter))
}

// dirSize walks absDir, whose path relative to the scan root is relDir, so that
// exclusions line up with the ones applied by Scan.
func dirSize(absDir, relDir string, exclusions []string, reporter diag.Reporter) int64 {
	var total int64

	_ = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			reporter.Report(diag.Diagnostic{Kind: diag.Unreadable, Op: "size", Path: path, Err: err})
			return nil
		}
		if path == absDir {
			return nil
		}

		rel := joinRel(relDir, absDir, path)
		if shouldExclude(rel, d.IsDir(), exclusions) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := infoOf(d)
		if err != nil {
			reporter.Report(diag.Diagnostic{Kind: kindFor(err), Op: "size", Path: path, Err: err})
			return nil
		}
		total += info.Size()
		return nil
	})

	return total
}

// Scan walks root top-down and returns every file and directory below it,
// root entry first, in snapshot order.
func Scan(root string, opts Options) ([]snapshot.Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fserr.NotFound(root, err)
	}
	if !info.IsDir() {
		return nil, fserr.NotFound(root, nil)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fserr.NotFound(root, err)
	}
	// a symlinked root is followed once; nothing below it is
	walkRoot := absRoot
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		walkRoot = resolved
	}
	cwd, _ := os.Getwd()
	// every directory is sized once per ancestor; report each problem once
	reporter := diag.Dedup(opts.Reporter)

	entries := []snapshot.Entry{{
		Name:            filepath.Base(absRoot),
		Path:            snapshot.RootPath,
		ParentDirectory: parentDisplayName(root, absRoot, cwd),
		Type:            snapshot.KindDirectory,
		SizeBytes:       dirSize(walkRoot, snapshot.RootPath, opts.Exclude, reporter),
	}}

	_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			reporter.Report(diag.Diagnostic{Kind: diag.Unreadable, Op: "scan", Path: path, Err: err})
			return nil
		}
		if path == walkRoot {
			return nil
		}

		rel := joinRel(snapshot.RootPath, walkRoot, path)
		if shouldExclude(rel, d.IsDir(), opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entry := snapshot.Entry{
			Name:            d.Name(),
			Path:            rel,
			ParentDirectory: parentOf(rel),
			Type:            snapshot.KindFile,
		}

		switch {
		case d.IsDir():
			entry.Type = snapshot.KindDirectory
			entry.SizeBytes = dirSize(path, rel, opts.Exclude, reporter)
		case d.Type().IsRegular():
			fi, err := infoOf(d)
			if err != nil {
				reporter.Report(diag.Diagnostic{Kind: kindFor(err), Op: "scan", Path: path, Err: err})
			} else {
				entry.SizeBytes = fi.Size()
			}
		default:
			// symlinks and special files are listed but never counted
		}

		entries = append(entries, entry)
		return nil
	})

	snapshot.Sort(entries)
	return entries, nil
}

// parentDisplayName names the directory containing the scan root.
func parentDisplayName(given, absRoot, cwd string) string {
	parent := filepath.Dir(absRoot)
	switch {
	case parent == absRoot:
		return snapshot.RootSentinel
	case !filepath.IsAbs(given) && parent == cwd:
		return "."
	default:
		return filepath.Base(parent)
	}
}

// joinRel converts path (below absDir) into a slash path relative to the scan
// root, given absDir's own relative path relDir.
func joinRel(relDir, absDir, path string) string {
	rel, err := filepath.Rel(absDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	if relDir == snapshot.RootPath {
		return rel
	}
	return relDir + "/" + rel
}

func parentOf(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return snapshot.RootPath
	}
	return rel[:i]
}

func kindFor(err error) diag.Kind {
	if errors.Is(err, fs.ErrNotExist) {
		return diag.Vanished
	}
	return diag.Unreadable
}

func shouldExclude(relPath string, isDir bool, exclusions []string) bool {
	base := relPath
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		base = relPath[i+1:]
	}

	for _, pattern := range exclusions {
		if strings.HasSuffix(pattern, "/") {
			// directory patterns prune the directory itself; its contents are never visited
			if !isDir {
				continue
			}
			dirPattern := strings.TrimSuffix(pattern, "/")
			if matched, _ := filepath.Match(dirPattern, base); matched || base == dirPattern {
				return true
			}
			continue
		}

		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
				return true
			}
		}
	}
	return false
}
