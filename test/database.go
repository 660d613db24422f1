package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path of a fresh SQLite database file for t. The
// directory is removed when the test finishes, so every test starts with
// an empty schema.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "agenzia-eventi.db")
}
