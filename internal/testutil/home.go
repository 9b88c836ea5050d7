// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir sets the appropriate HOME environment variable based on platform
// and returns a cleanup function to restore the original value.
//
// Config directory resolution falls back to the home directory, so tests that
// exercise it point HOME at a temporary directory.
//
// Platform handling:
//   - Windows: Sets USERPROFILE
//   - Linux/macOS: Sets HOME
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tmpDir := t.TempDir()
//	    cleanup := testutil.SetHomeDir(t, tmpDir)
//	    defer cleanup()
//
//	    // Test code that uses home directory...
//	}
//
// Or with t.Cleanup:
//
//	func TestSomething(t *testing.T) {
//	    tmpDir := t.TempDir()
//	    t.Cleanup(testutil.SetHomeDir(t, tmpDir))
//
//	    // Test code...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}
