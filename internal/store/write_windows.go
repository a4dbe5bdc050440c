//go:build windows

package store

import "os"

// writeFile replaces path with data. Windows has no atomic rename-over, so
// this falls back to a plain truncating write.
func writeFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
