// Package cli provides shared plumbing for the pyrite command line
// tools: version reporting, logging and terminal detection.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// Version information for all CLI tools.
const (
	Version   = "0.2.0"
	BuildDate = "2026-08-24"
)

// VersionInfo contains version and build information.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information.
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes version information to w, as JSON when asked.
func PrintVersion(w io.Writer, toolName string, jsonOutput bool) {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err == nil {
			fmt.Fprintln(w, string(data))
			return
		}
		fmt.Fprintf(os.Stderr, "Error: failed to marshal version info: %v\n", err)
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
}

// ExitWithError prints an error message and exits with code 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger provides leveled logging for CLI tools.
type Logger struct {
	Out     io.Writer
	Verbose bool
	Debug   bool
}

// NewLogger creates a logger writing to stderr.
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{Out: os.Stderr, Verbose: verbose, Debug: debug}
}

func (l *Logger) log(level, format string, args ...interface{}) {
	fmt.Fprintf(l.Out, "[%s] %s: %s\n",
		level, time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Infof logs an info message when verbose output is enabled.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.Verbose {
		l.log("INFO", format, args...)
	}
}

// Debugf logs a debug message when debug output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.Debug {
		l.log("DEBUG", format, args...)
	}
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

// StdoutIsTerminal reports whether standard output is attached to a
// terminal, which decides whether diagnostics are colored.
func StdoutIsTerminal() bool {
	return isTerminal(os.Stdout.Fd())
}
