package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fivemoreminix/codin/config"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/browser"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "codin: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath, "path of the configuration file")
	printConfig := flag.Bool("print-config", false, "print the configuration in effect as TOML and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	if *printConfig {
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "codin: %v\n", cfgErr)
		}
		return cfg.Write(os.Stdout)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	if cfgErr != nil {
		logger.Error("using the default configuration", "err", cfgErr)
	}

	// The terminal belongs to tcell; the browser's output would garble it.
	browser.Stdout, browser.Stderr = io.Discard, io.Discard

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini() // Useful for handling panics
	s.EnableMouse()

	clip, err := NewClipboard(true)
	if err != nil {
		logger.Warn("system clipboard unavailable, using an internal one", "err", err)
	}

	app := NewApp(s, cfg, logger, clip)
	defer app.Close()

	if flag.NArg() > 0 {
		app.Open(flag.Arg(0))
	}
	logger.Info("started", "file", flag.Arg(0), "system_clipboard", clip.External())

	app.Run()
	logger.Info("quit")
	return nil
}

// newLogger opens the log file named in cfg. Logging goes nowhere when no file
// is configured.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, _ := cfg.Level() // Validated when loaded
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}
