// Package main is the entry point for the reditor terminal editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reditor/reditor/internal/app"
	"github.com/reditor/reditor/internal/config"
	"github.com/reditor/reditor/internal/input"
	"github.com/reditor/reditor/internal/renderer"
	"github.com/reditor/reditor/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.StringVar(&configPath, "c", "", "path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "reditor - a terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: reditor [options] [file|directory]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  reditor            Open the welcome screen\n")
		fmt.Fprintf(os.Stderr, "  reditor file.go    Open a file\n")
		fmt.Fprintf(os.Stderr, "  reditor ./project  Open a directory in the sidebar\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("reditor %s (%s)\n", version, commit)
		return 0
	}

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NullLogger
	if cfg.Logging.File != "" && cfg.Logging.Level != "off" {
		l, closeLog, err := app.NewFileLogger(cfg.Logging.File, app.ParseLogLevel(cfg.Logging.Level))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer closeLog()
		logger = l
	}
	app.SetLogger(logger)

	theme := renderer.OneDark()
	if cfg.UI.ThemeFile != "" {
		if err := theme.LoadThemeFile(cfg.UI.ThemeFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	keymap := input.Default()
	if cfg.Editor.KeymapFile != "" {
		if err := keymap.LoadFile(cfg.Editor.KeymapFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	term := backend.NewTerminal()
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	defer term.Fini()

	session := config.OpenSession(config.SessionPath())
	application := app.New(cfg, term, theme,
		app.WithLogger(logger),
		app.WithKeymap(keymap),
		app.WithSession(session),
	)
	defer application.Close()

	if err := application.OpenPath(flag.Arg(0)); err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// A signal ends the poll loop by closing the terminal.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Fini()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		term.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
