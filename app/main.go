package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/Neev4n/gosh/internal/config"
	"github.com/Neev4n/gosh/internal/logging"
	"github.com/Neev4n/gosh/internal/repl"
	"github.com/Neev4n/gosh/pkg/shell"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, "gosh:", err)
		return 2
	}

	if err := config.LoadEnv(cfg.EnvFile); err != nil {
		fmt.Fprintln(os.Stderr, "gosh:", err)
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gosh:", err)
		return 2
	}
	defer closer.Close()

	if !cfg.Color {
		color.NoColor = true
	}

	// Stdin stays nil: the line editor owns the terminal, so children
	// read from the null device.
	s := shell.New(
		shell.IOBindings{Stdout: os.Stdout, Stderr: repl.NewErrorWriter(os.Stderr)},
		shell.WithLogger(logger),
	)

	reader, err := repl.NewReader(os.Stdin, os.Stdout, repl.Options{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	}, s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gosh:", err)
		return 2
	}
	defer reader.Close()

	return repl.NewSession(s, reader, logger).Run(context.Background())
}
