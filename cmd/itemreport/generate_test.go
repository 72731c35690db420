package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/itemreport/internal/config"
	"github.com/nao1215/itemreport/internal/database"
	"github.com/nao1215/itemreport/internal/pipeline"
)

const itemsJSON = `[
  {"id": 1, "name": "Item A", "value": 1500},
  {"id": 2, "name": "Item B", "value": 600},
  {"id": 3, "name": "Item C", "value": 300}
]`

const configYAML = `threshold: 500
priorityLimit: 1000
users:
  ana:
    name: Ana
    role: ADMIN
  bob:
    name: Bob
    role: USER
`

// testEnv holds the files a generate run needs.
type testEnv struct {
	dir        string
	itemsPath  string
	configPath string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	env := testEnv{
		dir:        dir,
		itemsPath:  filepath.Join(dir, "items.json"),
		configPath: filepath.Join(dir, "config.yaml"),
	}
	if err := os.WriteFile(env.itemsPath, []byte(itemsJSON), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.configPath, []byte(configYAML), 0600); err != nil {
		t.Fatal(err)
	}
	return env
}

// runGenerate executes the generate command and returns stdout and stderr.
func runGenerateForTest(t *testing.T, env testEnv, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewGenerateCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewGenerateCmd(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()

	flags := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"type", "t", "[]"},
		{"user", "u", ""},
		{"role", "r", ""},
		{"profile", "P", ""},
		{"output", "o", ""},
		{"markdown", "m", "false"},
		{"config", "c", ""},
		{"threshold", "", "500"},
		{"priority-limit", "", "1000"},
		{"concurrency", "", "4"},
		{"no-history", "", "false"},
	}

	for _, tt := range flags {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"admin", "ADMIN"},
		{" Admin ", "ADMIN"},
		{"csv", "CSV"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeIdentifier(tt.in); got != tt.want {
			t.Errorf("normalizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunGenerateCmd(t *testing.T) {
	t.Parallel()

	t.Run("admin CSV report to stdout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--role", "admin", "--no-history")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		want := "ID,NOME,VALOR,USUARIO\n" +
			"1,Item A,1500,Ana\n" +
			"2,Item B,600,Ana\n" +
			"3,Item C,300,Ana\n" +
			"\nTotal,,\n2400,,\n"
		if diff := cmp.Diff(want, stdout); diff != "" {
			t.Errorf("stdout mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("profile selects a restricted user", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--profile", "bob", "--type", "html", "--no-history")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if !strings.Contains(stdout, "<h2>Usuário: Bob</h2>") {
			t.Errorf("expected Bob in header, got %q", stdout)
		}
		if strings.Contains(stdout, "1500") || strings.Contains(stdout, "600") {
			t.Errorf("restricted user should not see items above the threshold: %q", stdout)
		}
		if !strings.Contains(stdout, "<h3>Total: 300</h3>") {
			t.Errorf("expected total 300, got %q", stdout)
		}
	})

	t.Run("threshold flag overrides config file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Bob", "--threshold", "600", "--no-history")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(stdout, "\n900,,") {
			t.Errorf("expected total 900, got %q", stdout)
		}
	})

	t.Run("reads JSON from stdin", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)

		var stdout bytes.Buffer
		cmd := NewGenerateCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader(`{"items": [{"id": "x", "name": "Solo", "value": 10}]}`))
		cmd.SetArgs([]string{"--config", env.configPath, "--user", "Bob", "--no-history"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(stdout.String(), "x,Solo,10,Bob") {
			t.Errorf("unexpected output %q", stdout.String())
		}
	})

	t.Run("unknown report type", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--type", "PDF", "--no-history")

		var cfgErr *pipeline.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
		if stdout != "" {
			t.Errorf("expected no output, got %q", stdout)
		}
	})

	t.Run("markdown requires the flag", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--type", "MARKDOWN", "--no-history")
		if !errors.Is(err, pipeline.ErrUnknownReportType) {
			t.Errorf("expected ErrUnknownReportType, got %v", err)
		}

		stdout, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--type", "MARKDOWN", "-m", "--no-history")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(stdout, "# Relatório") {
			t.Errorf("expected markdown heading, got %q", stdout)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, _, err := runGenerateForTest(t, env, env.itemsPath, "--no-history")
		if !errors.Is(err, config.ErrNoUser) {
			t.Errorf("expected ErrNoUser, got %v", err)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.configPath = filepath.Join(env.dir, "missing.yaml")
		_, _, err := runGenerateForTest(t, env, env.itemsPath, "--user", "Ana", "--no-history")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, _, err := runGenerateForTest(t, env, env.itemsPath, "--profile", "carol", "--no-history")
		if !errors.Is(err, config.ErrUnknownProfile) {
			t.Errorf("expected ErrUnknownProfile, got %v", err)
		}
	})

	t.Run("several types require an output directory", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, _, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "-t", "CSV", "-t", "HTML", "--no-history")
		if !errors.Is(err, config.ErrOutputDirRequired) {
			t.Errorf("expected ErrOutputDirRequired, got %v", err)
		}
	})
}

func TestRunGenerateCmdWritesFiles(t *testing.T) {
	t.Parallel()

	t.Run("single report to file with tee", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		outputPath := filepath.Join(env.dir, "out", "report.html")
		stdout, stderr, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--role", "ADMIN", "-t", "HTML",
			"-o", outputPath, "--tee", "--no-history")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(data) != stdout {
			t.Error("tee output should match the file")
		}
		if !strings.Contains(string(data), `<tr style="font-weight:bold;"><td>1</td>`) {
			t.Errorf("expected priority row for item 1, got %q", data)
		}
		if !strings.Contains(stderr, "HTML report written to") {
			t.Errorf("expected status line, got %q", stderr)
		}
	})

	t.Run("single type with output directory writes its file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		outDir := filepath.Join(env.dir, "reports")
		stdout, stderr, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--role", "ADMIN", "-t", "CSV",
			"--output-dir", outDir, "--no-history")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		data, err := os.ReadFile(filepath.Join(outDir, "report.csv"))
		if err != nil {
			t.Fatalf("expected report.csv in output directory: %v", err)
		}
		if !strings.HasPrefix(string(data), "ID,NOME,VALOR,USUARIO\n") {
			t.Errorf("unexpected report content %q", data)
		}
		if !strings.Contains(stderr, "CSV report written to") {
			t.Errorf("expected status line, got %q", stderr)
		}
	})

	t.Run("batch writes one file per type and records history", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		outDir := filepath.Join(env.dir, "reports")
		dbDir := filepath.Join(env.dir, "db")
		_, stderr, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Ana", "--role", "ADMIN",
			"-t", "csv", "-t", "HTML", "-t", "MARKDOWN", "-t", "CSV", "-m",
			"--output-dir", outDir, "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("Execute() error = %v (stderr: %s)", err, stderr)
		}

		for _, name := range []string{"report.csv", "report.html", "report.md"} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}

		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open history: %v", err)
		}
		defer db.Close()

		records, err := db.ListReports(t.Context(), 0)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		runID := records[0].RunID
		for _, r := range records {
			if r.RunID != runID {
				t.Errorf("records should share one run ID, got %q and %q", r.RunID, runID)
			}
			if r.Total != 2400 || r.VisibleCount != 3 || r.InputCount != 3 {
				t.Errorf("unexpected record %+v", r)
			}
		}
	})

	t.Run("batch continues after a failed type", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		outDir := filepath.Join(env.dir, "reports")
		_, stderr, err := runGenerateForTest(t, env, env.itemsPath,
			"--user", "Bob", "-t", "CSV", "-t", "PDF",
			"--output-dir", outDir, "--no-history")
		if !errors.Is(err, pipeline.ErrUnknownReportType) {
			t.Fatalf("expected ErrUnknownReportType, got %v", err)
		}
		if _, statErr := os.Stat(filepath.Join(outDir, "report.csv")); statErr != nil {
			t.Errorf("CSV report should still be written: %v", statErr)
		}
		if !strings.Contains(stderr, "PDF report failed") {
			t.Errorf("expected failure status, got %q", stderr)
		}
	})
}
