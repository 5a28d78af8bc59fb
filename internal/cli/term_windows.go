package cli

import "golang.org/x/sys/windows"

// isTerminal reports whether fd refers to a console handle.
func isTerminal(fd uintptr) bool {
	var mode uint32
	return windows.GetConsoleMode(windows.Handle(fd), &mode) == nil
}
