//go:build !windows

package store

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFile atomically replaces path with data.
func writeFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
