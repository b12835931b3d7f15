//go:build linux

package rename

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// linkFile is swapped in tests to simulate filesystems without hard links.
var linkFile = os.Link

// renameNoReplace renames oldpath to newpath and fails with EEXIST instead of
// replacing an existing newpath.
func renameNoReplace(oldpath, newpath string) error {
	err := unix.Renameat2(unix.AT_FDCWD, oldpath, unix.AT_FDCWD, newpath, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EINVAL):
		// kernel or filesystem without RENAME_NOREPLACE
		return linkRename(oldpath, newpath)
	default:
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
}

// linkRename emulates a no-replace rename with link + unlink; link refuses an
// existing destination. Filesystems without hard links (CIFS, FAT) fall back
// to checkedRename.
func linkRename(oldpath, newpath string) error {
	if err := linkFile(oldpath, newpath); err != nil {
		if noHardLinks(err) {
			return checkedRename(oldpath, newpath)
		}
		return err
	}
	if err := os.Remove(oldpath); err != nil {
		if rbErr := os.Remove(newpath); rbErr != nil {
			return fmt.Errorf("unlink %s: %w (and rollback of %s failed: %v)", oldpath, err, newpath, rbErr)
		}
		return err
	}
	return nil
}

func noHardLinks(err error) bool {
	return errors.Is(err, unix.EPERM) ||
		errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP) ||
		errors.Is(err, unix.EMLINK)
}
