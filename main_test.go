package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jubentley/AIPDBQuery/reputation"
)

func TestRunOnceSuccess(t *testing.T) {
	querier := &scriptedQuerier{outcomes: map[string]reputation.Outcome{
		"8.8.8.8": {OK: true, Record: reputation.Record{Score: 0, HasScore: true}},
	}}
	var out strings.Builder
	code := runOnce(&out, querier, false, "8.8.8.8")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Score : 0") {
		t.Errorf("expected result lines, got %q", out.String())
	}
}

func TestRunOnceFailure(t *testing.T) {
	querier := &scriptedQuerier{outcomes: map[string]reputation.Outcome{
		"8.8.8.8": {OK: false, Reason: "HTTP 429 Too Many Requests"},
	}}
	var out strings.Builder
	code := runOnce(&out, querier, false, "8.8.8.8")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "Query failed: HTTP 429") {
		t.Errorf("expected failure line, got %q", out.String())
	}
}

func TestRunOnceInvalidAddress(t *testing.T) {
	querier := &scriptedQuerier{}
	var out strings.Builder
	code := runOnce(&out, querier, false, "not-an-ip")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if len(querier.calls) != 0 {
		t.Errorf("expected no network call, got %v", querier.calls)
	}
	if !strings.Contains(out.String(), rejectionText) {
		t.Errorf("expected rejection line, got %q", out.String())
	}
}

func TestLoadClientConfigFlagWins(t *testing.T) {
	dir := t.TempDir()
	flagFile := filepath.Join(dir, "flag.yaml")
	envFile := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(flagFile, []byte("api:\n  timeout_seconds: 7\n"), 0o644); err != nil {
		t.Fatalf("write flag config: %v", err)
	}
	if err := os.WriteFile(envFile, []byte("api:\n  timeout_seconds: 9\n"), 0o644); err != nil {
		t.Fatalf("write env config: %v", err)
	}
	t.Setenv(envConfigPath, envFile)

	cfg, source, err := loadClientConfig(flagFile)
	if err != nil {
		t.Fatalf("loadClientConfig: %v", err)
	}
	if source != flagFile {
		t.Errorf("expected flag path to win, got %q", source)
	}
	if cfg.API.TimeoutSeconds != 7 {
		t.Errorf("expected flag file settings, got %d", cfg.API.TimeoutSeconds)
	}
}

func TestLoadClientConfigEnvFallback(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(envFile, []byte("ui:\n  color: \"never\"\n"), 0o644); err != nil {
		t.Fatalf("write env config: %v", err)
	}
	t.Setenv(envConfigPath, envFile)

	cfg, source, err := loadClientConfig("")
	if err != nil {
		t.Fatalf("loadClientConfig: %v", err)
	}
	if source != envFile {
		t.Errorf("expected env path, got %q", source)
	}
	if cfg.UI.Color != "never" {
		t.Errorf("expected env file settings, got %q", cfg.UI.Color)
	}
}

// chdir moves the test into dir and restores the previous working directory
// during cleanup. It stands in for testing.T.Chdir, which needs a newer Go
// toolchain than this module builds with.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func TestLoadClientConfigMissingEverywhereUsesDefaults(t *testing.T) {
	t.Setenv(envConfigPath, "")
	chdir(t, t.TempDir())

	cfg, source, err := loadClientConfig("")
	if err != nil {
		t.Fatalf("loadClientConfig: %v", err)
	}
	if source != "" {
		t.Errorf("expected empty source for defaults, got %q", source)
	}
	if cfg.API.BaseURL != "https://api.abuseipdb.com" {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
}

func TestLoadClientConfigFlagPointingAtMissingFileFallsThrough(t *testing.T) {
	t.Setenv(envConfigPath, "")
	chdir(t, t.TempDir())

	cfg, source, err := loadClientConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadClientConfig: %v", err)
	}
	if source != "" {
		t.Errorf("expected defaults when the named file is missing, got %q", source)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout, got %d", cfg.API.TimeoutSeconds)
	}
}

func TestLoadClientConfigMalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("api: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := loadClientConfig(bad); err == nil {
		t.Fatal("expected a parse error to stop startup")
	}
}
