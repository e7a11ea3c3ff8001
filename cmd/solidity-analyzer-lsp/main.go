// Command solidity-analyzer-lsp runs the Solidity analyzer as a
// stdio-transport language server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/solidity-analyzer/solidity-analyzer/lspserver"
)

var version = "dev"

func isCleanShutdown(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") || strings.Contains(errStr, "EPIPE")
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "solidity-analyzer-lsp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("solidity-analyzer-lsp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		logLevel    = fs.String("log-level", "info", "log level: error|warn|info|debug")
		logFile     = fs.String("log-file", "", "log file path (empty to log to stderr)")
		projectRoot = fs.String("project-root", "", "override the Foundry project root for import resolution")
		profile     = fs.String("profile", "", "Foundry profile to activate (defaults to FOUNDRY_PROFILE, then \"default\")")
		showVer     = fs.Bool("version", false, "print version and exit")
		_           = fs.Bool("stdio", false, "use stdio transport (default, accepted for editor compatibility)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: solidity-analyzer-lsp [options]\n\n")
		fmt.Fprintf(os.Stderr, "Solidity Language Server Protocol implementation.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.SetOutput(os.Stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		fs.Usage()
		return fmt.Errorf("parse flags: %w", err)
	}

	if *showVer {
		fmt.Printf("solidity-analyzer-lsp %s\n", version)
		return nil
	}

	logger, cleanup, err := setupLogger(*logLevel, *logFile)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer cleanup()

	logger.Info("starting solidity-analyzer-lsp", slog.String("version", version), slog.String("log_level", *logLevel))

	canonicalRoot := *projectRoot
	if canonicalRoot != "" {
		if abs, err := filepath.Abs(canonicalRoot); err == nil {
			canonicalRoot = filepath.Clean(abs)
		}
		if info, err := os.Stat(canonicalRoot); err != nil {
			logger.Warn("project root does not exist; import resolution may fail", slog.String("path", canonicalRoot))
		} else if !info.IsDir() {
			logger.Warn("project root is not a directory; import resolution may fail", slog.String("path", canonicalRoot))
		}
	}

	srv := lspserver.NewServer(logger, lspserver.Config{
		ProjectRoot:   canonicalRoot,
		ActiveProfile: *profile,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.RunStdio() }()

	logger.Info("running on stdio")

	select {
	case err := <-errCh:
		if err != nil {
			if isCleanShutdown(err) {
				logger.Debug("client closed connection")
			} else {
				return fmt.Errorf("run server: %w", err)
			}
		}
		logger.Info("server shutdown complete")
		return nil
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", slog.String("signal", sig.String()))
		srv.Shutdown()
		if err := srv.Close(); err != nil {
			logger.Warn("error closing connection", slog.String("error", err.Error()))
		}
		if err := os.Stdin.Close(); err != nil {
			logger.Debug("error closing stdin", slog.String("error", err.Error()))
		}
		select {
		case err := <-errCh:
			if err != nil {
				logger.Debug("RunStdio returned after close", slog.String("error", err.Error()))
			}
		case <-time.After(5 * time.Second):
			logger.Warn("shutdown timed out, forcing exit")
		}
		logger.Info("server shutdown complete")
		return nil
	}
}

func setupLogger(level, logFile string) (*slog.Logger, func(), error) {
	var slogLevel slog.Level
	switch level {
	case "error":
		slogLevel = slog.LevelError
	case "warn":
		slogLevel = slog.LevelWarn
	case "info":
		slogLevel = slog.LevelInfo
	case "debug":
		slogLevel = slog.LevelDebug
	default:
		return nil, nil, fmt.Errorf("invalid log level: %q", level)
	}

	var w io.Writer
	cleanup := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		cleanup = func() { _ = f.Close() }
	} else {
		w = os.Stderr
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel, AddSource: true})
	return slog.New(handler), cleanup, nil
}
