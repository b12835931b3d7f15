//go:build !linux

package rename

// renameNoReplace has no atomic no-replace primitive on these platforms.
func renameNoReplace(oldpath, newpath string) error {
	return checkedRename(oldpath, newpath)
}
