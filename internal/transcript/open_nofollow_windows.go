//go:build windows

package transcript

import "os"

// openNoFollow opens a file for reading. Windows has no O_NOFOLLOW;
// the containment checks at discovery time are the only symlink
// defense on this platform.
func openNoFollow(path string) (*os.File, error) {
	return os.Open(path)
}
