package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunVersionFlag(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := run([]string{"--version"})

	_ = w.Close()
	os.Stdout = old

	if err != nil {
		t.Errorf("run(--version) returned error: %v", err)
	}

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	if !strings.Contains(buf.String(), "solidity-analyzer-lsp") {
		t.Errorf("version output missing program name: %q", buf.String())
	}
}

func TestRunHelpFlag(t *testing.T) {
	if err := run([]string{"-help"}); err != nil {
		t.Errorf("run(-help) returned error: %v", err)
	}
}

func TestRunInvalidFlag(t *testing.T) {
	if err := run([]string{"--invalid-flag-xyz"}); err == nil {
		t.Error("run(--invalid-flag-xyz) should return an error")
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	err := run([]string{"--log-level", "invalid"})
	if err == nil {
		t.Fatal("run(--log-level invalid) should return an error")
	}
	if !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("error should mention invalid log level: %v", err)
	}
}

func TestSetupLoggerValidLevels(t *testing.T) {
	for _, level := range []string{"error", "warn", "info", "debug"} {
		t.Run(level, func(t *testing.T) {
			logger, cleanup, err := setupLogger(level, "")
			if err != nil {
				t.Fatalf("setupLogger(%q, \"\") returned error: %v", level, err)
			}
			if logger == nil {
				t.Error("setupLogger returned nil logger")
			}
			cleanup()
		})
	}
}

func TestSetupLoggerInvalidLevel(t *testing.T) {
	if _, _, err := setupLogger("invalid", ""); err == nil {
		t.Error("setupLogger(\"invalid\", \"\") should return an error")
	}
}

func TestSetupLoggerFileCreationAndAppend(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	logger, cleanup, err := setupLogger("info", logPath)
	if err != nil {
		t.Fatalf("setupLogger failed: %v", err)
	}
	logger.Info("first message")
	cleanup()

	logger2, cleanup2, err := setupLogger("info", logPath)
	if err != nil {
		t.Fatalf("setupLogger failed: %v", err)
	}
	logger2.Info("second message")
	cleanup2()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "first message") || !strings.Contains(content, "second message") {
		t.Errorf("log file should contain both messages: %s", content)
	}
}

func TestIsCleanShutdown(t *testing.T) {
	cases := []struct {
		err   error
		clean bool
	}{
		{nil, false},
		{os.ErrClosed, true},
		{errBrokenPipe{}, true},
	}
	for _, c := range cases {
		if c.err == nil {
			continue
		}
		if got := isCleanShutdown(c.err); got != c.clean {
			t.Errorf("isCleanShutdown(%v) = %v, want %v", c.err, got, c.clean)
		}
	}
}

type errBrokenPipe struct{}

func (errBrokenPipe) Error() string { return "write: broken pipe" }
