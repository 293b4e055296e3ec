package vos

import (
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// VFS implements a virtual filesystem.
type VFS = afero.Fs

// NewOsFs returns the host filesystem.
func NewOsFs() VFS {
	return afero.NewOsFs()
}

// IsExecutableFile reports whether path names a regular file (after
// following symlinks) that may be executed.
//
// On the host filesystem execute permission is checked with access(2) so the
// caller's credentials are honored. Virtual filesystems have no notion of a
// caller, so any execute bit counts.
func IsExecutableFile(vfs VFS, path string) bool {
	if _, ok := vfs.(*afero.OsFs); ok {
		if err := unix.Access(path, unix.X_OK); err != nil {
			return false
		}
	}

	info, err := vfs.Stat(path)
	if err != nil {
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}

	return info.Mode().Perm()&0111 != 0
}
