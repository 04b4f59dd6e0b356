// Package fileid derives stable identifiers for input files so repeated
// vectorizations of the same file can be correlated.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const prefix = "file:"

// idBytes is how much of the path digest is kept.
const idBytes = 12

// ID returns a stable identifier for path. Relative paths are resolved against
// the working directory first, so "./a.txt" and its absolute form agree.
func ID(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return prefix + hex.EncodeToString(sum[:idBytes])
}
