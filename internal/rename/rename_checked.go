package rename

import (
	"io/fs"
	"os"
)

// checkedRename checks the destination then renames. The window between the
// two calls stays open, so it is only used where nothing stronger works.
func checkedRename(oldpath, newpath string) error {
	if _, err := os.Lstat(newpath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrExist}
	}
	return os.Rename(oldpath, newpath)
}
