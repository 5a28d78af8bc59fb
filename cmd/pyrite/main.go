// Package main provides the entry point for the pyrite checker.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyrite-dev/pyrite/internal/cli"
	"github.com/pyrite-dev/pyrite/internal/config"
	"github.com/pyrite-dev/pyrite/internal/diagnostic"
	"github.com/pyrite-dev/pyrite/internal/typechecker"
	"github.com/pyrite-dev/pyrite/internal/watch"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "show version information")
		jsonOutput       = flag.Bool("json", false, "output version in JSON format")
		verbose          = flag.Bool("verbose", false, "enable verbose output")
		debug            = flag.Bool("debug", false, "enable debug output")
		configPath       = flag.String("config", "", "path to pyrite.json (default: ./pyrite.json)")
		watchMode        = flag.Bool("watch", false, "re-check files when they change")
		warningsAsErrors = flag.Bool("warnings-as-errors", false, "treat warnings as errors")
	)

	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		cli.PrintVersion(os.Stdout, "pyrite", *jsonOutput)
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input files specified")
		showUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	if err := cfg.CheckToolVersion(cli.Version); err != nil {
		cli.ExitWithError("%v", err)
	}
	if *warningsAsErrors {
		cfg.WarningsAsErrors = true
	}

	logger := cli.NewLogger(cfg.Verbose || *verbose, *debug)
	color := cli.StdoutIsTerminal()

	hadErrors := checkFiles(files, cfg, color, logger)

	if *watchMode {
		watchFiles(files, cfg, color, logger)
		return
	}
	if hadErrors {
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("pyrite - static type checking for Python-like source")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    pyrite [OPTIONS] <FILES...>")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    --version             Show version information")
	fmt.Println("    --json                Output version in JSON format")
	fmt.Println("    --verbose             Enable verbose output")
	fmt.Println("    --debug               Enable debug output")
	fmt.Println("    --config              Path to pyrite.json")
	fmt.Println("    --watch               Re-check files when they change")
	fmt.Println("    --warnings-as-errors  Treat warnings as errors")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("    pyrite sample.py")
	fmt.Println("    pyrite --watch src/main.py src/util.py")
}

// checkFiles checks every file and prints diagnostics. It reports
// whether any file had errors.
func checkFiles(files []string, cfg *config.Config, color bool, logger *cli.Logger) bool {
	hadErrors := false
	for _, file := range files {
		if checkFile(file, cfg, color, logger) {
			hadErrors = true
		}
	}
	return hadErrors
}

// checkFile checks one file and reports whether it had errors.
func checkFile(path string, cfg *config.Config, color bool, logger *cli.Logger) bool {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", path, err)
		return true
	}

	logger.Infof("checking %s", path)
	engine := diagnostic.NewEngine(cfg.DiagnosticConfig())
	typechecker.CheckSource(string(source), path, engine)

	if out := engine.Format(color); out != "" {
		fmt.Println(out)
	}
	return engine.HasErrors()
}

// watchFiles re-checks files as they change until interrupted.
func watchFiles(files []string, cfg *config.Config, color bool, logger *cli.Logger) {
	w, err := watch.New()
	if err != nil {
		cli.ExitWithError("failed to start watcher: %v", err)
	}
	defer w.Close()

	// Watch the containing directories: editors often replace files
	// instead of writing them in place.
	watched := make(map[string]bool)
	byPath := make(map[string]bool)
	for _, file := range files {
		byPath[filepath.Clean(file)] = true
		dir := filepath.Dir(file)
		if !watched[dir] {
			if err := w.Add(dir); err != nil {
				cli.ExitWithError("failed to watch %s: %v", dir, err)
			}
			watched[dir] = true
		}
	}

	logger.Infof("watching %d file(s), press Ctrl-C to stop", len(files))
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if !ev.Op.Has(watch.OpWrite) && !ev.Op.Has(watch.OpCreate) {
				continue
			}
			path := filepath.Clean(ev.Path)
			if !byPath[path] && !strings.HasSuffix(path, ".py") {
				continue
			}
			logger.Debugf("%s: %s", ev.Op, path)
			checkFile(path, cfg, color, logger)
		case err := <-w.Errors():
			logger.Errorf("watch error: %v", err)
		}
	}
}
