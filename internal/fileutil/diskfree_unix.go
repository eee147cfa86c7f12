//go:build linux || darwin

package fileutil

import "golang.org/x/sys/unix"

// DiskFreeBytes returns the number of bytes available to unprivileged users
// on the filesystem containing path.
func DiskFreeBytes(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
