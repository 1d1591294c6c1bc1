// Package main is the entry point for the keyview terminal viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keyview/internal/app"
	"github.com/dshills/keyview/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	app.Version = version

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(stderr, "Error: keyview needs an interactive terminal")
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Ensure the terminal is restored on all exit paths
	defer application.Shutdown()

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(terminal); err != nil {
		application.Shutdown()
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := application.Run(ctx); err != nil {
		// A signal ends the session the same way Ctrl+q does
		if errors.Is(err, context.Canceled) {
			return 0
		}
		application.Shutdown()
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// parseFlags parses the command line. done reports that the program
// should exit with code without starting a session.
func parseFlags(args []string, stdout, stderr io.Writer) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("keyview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion, showHelp bool

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keyview - terminal text viewer\n\n")
		fmt.Fprintf(stderr, "Usage: keyview [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys:\n")
		fmt.Fprintf(stderr, "  arrows, Home, End     move the cursor\n")
		fmt.Fprintf(stderr, "  PageUp, PageDown      move one screen\n")
		fmt.Fprintf(stderr, "  Ctrl+q                quit\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 1, true
	}

	if showHelp {
		fs.Usage()
		return opts, 0, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "keyview %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.File = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: expected at most one file, got %d\n", fs.NArg())
		return opts, 1, true
	}

	return opts, 0, false
}
