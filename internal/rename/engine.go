// Package rename performs extension-filtered batch renames inside one directory.
//
// A batch never overwrites an existing file and never stops on a single bad
// file: skipped files are reported through a diag.Reporter while the returned
// log lists only completed renames.
package rename

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fsinventory/internal/diag"
	"fsinventory/internal/fserr"
	"fsinventory/internal/naming"
	"fsinventory/internal/pathparse"
)

// Record is one completed rename.
type Record struct {
	OriginalPath string `json:"original_path" yaml:"original_path"`
	NewPath      string `json:"new_path" yaml:"new_path"`
}

// Progress receives the number of matching files once, then one tick per file.
type Progress interface {
	Start(total int64)
	Increment()
}

// Options control a single Run.
type Options struct {
	Reporter diag.Reporter
	Progress Progress
	// DryRun composes names and checks collisions without renaming anything.
	DryRun bool
}

// renameFile is the mutating primitive; tests replace it to inject OS failures.
var renameFile = renameNoReplace

// Run renames every regular file in cfg.Dir() whose extension matches the
// source extension, in lexicographic order, numbering successes from 1.
func Run(cfg *Config, opts Options) ([]Record, error) {
	if cfg == nil {
		return nil, fserr.InvalidArgument("nil rename config")
	}
	reporter := diag.OrDiscard(opts.Reporter)
	log := make([]Record, 0)

	matches, err := listMatches(cfg, reporter)
	if err != nil {
		reporter.Report(diag.Diagnostic{Kind: diag.Unreadable, Op: "list", Path: cfg.dir, Err: err})
		return log, nil
	}

	if opts.Progress != nil {
		opts.Progress.Start(int64(len(matches)))
	}

	planned := make(map[string]bool)
	counter := 1
	for _, name := range matches {
		if opts.Progress != nil {
			opts.Progress.Increment()
		}

		stem, _ := pathparse.SplitName(name)
		newName := naming.Compose(stem, cfg.slice, cfg.desired, counter, cfg.width) + cfg.targetExt

		original := filepath.Join(cfg.dir, name)
		candidate := filepath.Join(cfg.dir, newName)
		if candidate == original {
			// already carries its composed name
			continue
		}
		if exists(candidate) || planned[candidate] {
			reporter.Report(diag.Diagnostic{
				Kind: diag.Collision, Op: "rename", Path: original, Target: candidate,
				Err: fserr.Conflict(candidate),
			})
			continue
		}

		if opts.DryRun {
			planned[candidate] = true
		} else if err := renameFile(original, candidate); err != nil {
			d := diag.Diagnostic{Kind: diag.RenameFailed, Op: "rename", Path: original, Target: candidate, Err: err}
			if errors.Is(err, fs.ErrExist) {
				// lost the race against another writer
				d.Kind = diag.Collision
				d.Err = fserr.Conflict(candidate)
			}
			reporter.Report(d)
			continue
		}

		log = append(log, Record{OriginalPath: original, NewPath: candidate})
		counter++
	}

	return log, nil
}

// listMatches returns, in lexicographic order, the names of regular files in
// the directory whose extension equals the source extension ignoring case.
func listMatches(cfg *Config, reporter diag.Reporter) ([]string, error) {
	entries, err := os.ReadDir(cfg.dir)
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(entries))
	for _, e := range entries {
		_, ext := pathparse.SplitName(e.Name())
		if !strings.EqualFold(ext, cfg.sourceExt) {
			continue
		}

		// follow symlinks so a link to a regular file counts as one
		info, err := os.Stat(filepath.Join(cfg.dir, e.Name()))
		if err != nil {
			kind := diag.Unreadable
			if errors.Is(err, fs.ErrNotExist) {
				kind = diag.Vanished
			}
			reporter.Report(diag.Diagnostic{Kind: kind, Op: "list", Path: filepath.Join(cfg.dir, e.Name()), Err: err})
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		matches = append(matches, e.Name())
	}
	return matches, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
