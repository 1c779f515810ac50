package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordrank/internal/report"
)

const dreamText = "I have a dream. I have a dream today!"

func TestCountWritesCSV(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeInput(t, "dream.txt", dreamText)
	output := filepath.Join(env.baseDir, "out", "dream.csv")
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"count", input, "--output", output}, env.configPath)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	requireContains(t, out, "Ranked 9 tokens (5 distinct words)")
	requireContains(t, out, "Wrote 5 rows")
	requireContains(t, out, "dream")

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got, want := string(data), "word,count\na,2\ndream,2\nhave,2\ni,2\ntoday,1\n"; got != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}

func TestCountSelectionFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeInput(t, "dream.txt", dreamText)

	tests := []struct {
		name  string
		args  []string
		words []string
		first int
	}{
		{name: "top", args: []string{"--top", "2"}, words: []string{"a", "dream"}, first: 1},
		{name: "bottom", args: []string{"--bottom", "1"}, words: []string{"today"}, first: 5},
		{name: "range", args: []string{"--from", "3", "--to", "4"}, words: []string{"have", "i"}, first: 3},
		{name: "prefix", args: []string{"--prefix", "h"}, words: []string{"have"}, first: 1},
		{name: "case kept", args: []string{"--no-case-fold", "--top", "1"}, words: []string{"I"}, first: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"count", input, "--json"}, tc.args...)
			out, _, err := runCLI(t, args, env.configPath)
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			var result report.Result
			decodeJSON(t, out, &result)
			got := make([]string, 0, len(result.Selected))
			for _, e := range result.Selected {
				got = append(got, e.Word)
			}
			if strings.Join(got, ",") != strings.Join(tc.words, ",") {
				t.Fatalf("selected %v, want %v", got, tc.words)
			}
			if result.FirstRank != tc.first {
				t.Fatalf("first rank = %d, want %d", result.FirstRank, tc.first)
			}
		})
	}
}

func TestCountRejectsConflictingSelection(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeInput(t, "dream.txt", dreamText)

	_, _, err := runCLI(t, []string{"count", input, "--top", "1", "--bottom", "1"}, env.configPath)
	if !errors.Is(err, report.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestCountMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"count", filepath.Join(env.baseDir, "absent.txt")}, env.configPath)
	if !errors.Is(err, report.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestCountUsesConfiguredDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	extra := "\n[report]\ntop = 1\ninclude_index = true\n"
	f, err := os.OpenFile(env.configPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open config: %v", err)
	}
	if _, err := f.WriteString(extra); err != nil {
		t.Fatalf("append config: %v", err)
	}
	f.Close()

	input := env.writeInput(t, "dream.txt", dreamText)
	output := filepath.Join(env.baseDir, "top.csv")
	if _, _, err := runCLI(t, []string{"count", input, "-o", output, "--quiet"}, env.configPath); err != nil {
		t.Fatalf("count: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got, want := string(data), ",word,count\n0,a,2\n"; got != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}

func TestFindCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeInput(t, "dream.txt", dreamText)

	out, _, err := runCLI(t, []string{"find", input, "I have a dream"}, env.configPath)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	requireContains(t, out, "occurs 2 time(s)")
	requireContains(t, out, "I have a dream today!")
}

func TestCountWritesAndReleasesLogFile(t *testing.T) {
	env := setupCLITestEnv(t)
	content := fmt.Sprintf("[paths]\ndata_dir = %q\n\n[logging]\nlevel = \"info\"\nformat = \"json\"\nfile = true\n", env.dataDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	input := env.writeInput(t, "dream.txt", dreamText)

	if _, _, err := runCLI(t, []string{"count", input, "--quiet"}, env.configPath); err != nil {
		t.Fatalf("count: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.dataDir, "logs", "wordrank.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(data), `"msg":"report complete"`)
}
