//go:build !windows

package transcript

import (
	"os"
	"syscall"
)

// openNoFollow opens a file for reading without following a symlink
// at the final path component. O_NOFOLLOW makes the open fail with
// ELOOP when the target is a symlink, so a link planted between
// discovery and read cannot point the scanner at an arbitrary file.
func openNoFollow(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
}
