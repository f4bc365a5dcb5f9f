package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/burstworld/internal/cli"
	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/fsutil"
	"github.com/specialistvlad/burstworld/internal/hcl_adapter"
	"github.com/specialistvlad/burstworld/internal/session"
	"github.com/specialistvlad/burstworld/internal/yaml_adapter"
)

// main is the entrypoint for the burstworld application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Plugins run arbitrary Build code during startup; a panic there should
	// surface as an error rather than a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := session.New(ctx, outW, cfg, loaderFor(cfg.ManifestPath))
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// loaderFor picks the manifest format from the path: YAML for .yaml/.yml
// files and for directories holding YAML but no HCL, HCL otherwise.
func loaderFor(path string) config.Loader {
	if yaml_adapter.IsManifest(path) {
		return yaml_adapter.NewLoader()
	}
	if !fsutil.HasFiles(path, ".hcl") && fsutil.HasFiles(path, yaml_adapter.Extensions...) {
		return yaml_adapter.NewLoader()
	}
	return hcl_adapter.NewLoader()
}
