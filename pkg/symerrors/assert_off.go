//go:build !ci

package symerrors

// DebugAssertf is a no-op in non-CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {
	// Do nothing on purpose
}
