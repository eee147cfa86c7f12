// Package fileutil provides small filesystem helpers shared by the scanner,
// report writer, and notification transports.
package fileutil

import (
	"os"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsHidden reports whether a base name is a dotfile.
func IsHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
