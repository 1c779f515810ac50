package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordrank/internal/config"
	"wordrank/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsScopeAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, closer, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
		SessionID:   "session-1",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })

	logger = logging.NewComponentLogger(logger, "report")
	logger.Info("ranking complete",
		logging.Int("distinct_words", 5),
		logging.String("source", "my speech.txt"),
		logging.String(logging.FieldStage, "rank"),
	)

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO  report/rank: ranking complete distinct_words=5 source=\"my speech.txt\"") {
		t.Fatalf("unexpected line: %q", content)
	}
	if strings.Count(content, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", content)
	}
	if strings.Contains(content, "session-1") {
		t.Fatalf("session id should be hidden at info level, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if strings.Contains(content, "\x1b[") {
		t.Fatalf("file output must not be colorized, got %q", content)
	}
}

func TestConsoleLoggerDebugIncludesSourceAndSession(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, closer, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
		SessionID:   "session-2",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	logger.WithGroup("tok").Debug("tokenized", logging.Int("count", 9))

	content := readLog(t, logPath)
	if !strings.Contains(content, "(logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
	if !strings.Contains(content, "session_id=session-2") {
		t.Fatalf("expected session id in debug logs, got %q", content)
	}
	if !strings.Contains(content, "tok.count=9") {
		t.Fatalf("expected grouped key in debug logs, got %q", content)
	}
}

func TestJSONLoggerIncludesSessionAndContextFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, closer, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
		SessionID:   "abc",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })

	ctx := logging.WithStage(logging.WithRunID(context.Background(), "run-1"), "archive")
	logging.WithContext(ctx, logger).Warn("archive skipped", logging.Error(errors.New("disk full")))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	checks := map[string]string{
		"level":                "warn",
		"msg":                  "archive skipped",
		logging.FieldSessionID: "abc",
		logging.FieldRunID:     "run-1",
		logging.FieldStage:     "archive",
		"error":                "disk full",
	}
	for key, want := range checks {
		if got, _ := record[key].(string); got != want {
			t.Fatalf("field %s = %q, want %q (record %v)", key, got, want, record)
		}
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts field, got %v", record)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, closer, err := logging.New(logging.Options{Format: "json", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	logger.Info("hidden")
	logging.WarnWithContext(logger, "export retried", "export_retry")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") {
		t.Fatalf("info record should be filtered at warn level: %q", content)
	}
	for _, want := range []string{`"event_type":"export_retry"`, `"error_hint"`, `"impact"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = true
	cfg.Paths.LogDir = t.TempDir()

	logger, closer, err := logging.NewFromConfig(&cfg, "cfg-session")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closer.Close()
	logger.Error("boom")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, "wordrank.log"))
	if !strings.Contains(content, "ERROR") || !strings.Contains(content, "boom") {
		t.Fatalf("expected error record in log file, got %q", content)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.ErrorWithContext(nil, "ignored", "noop")
}

func TestCloserReleasesLogFiles(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "closed.log")
	logger, closer, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{"stderr", logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("before close")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if !strings.Contains(readLog(t, logPath), "before close") {
		t.Fatal("expected record written before close")
	}
}
