//go:build !linux && !darwin

package fileutil

import "errors"

// DiskFreeBytes is unsupported on this platform; callers treat the error as
// "free space unknown" and omit the figure from reports.
func DiskFreeBytes(path string) (int64, error) {
	return 0, errors.New("disk free space not supported on this platform")
}
