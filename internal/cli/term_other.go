//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package cli

// isTerminal is a stub for platforms without terminal detection.
func isTerminal(fd uintptr) bool { return false }
