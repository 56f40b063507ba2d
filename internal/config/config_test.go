package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadHonorsKintaiLog(t *testing.T) {
	tmp := t.TempDir()
	custom := filepath.Join(tmp, "attendance.log")

	chdir(t, tmp)
	t.Setenv(EnvLogPath, custom)
	t.Setenv(EnvRate, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogPath != custom {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, custom)
	}
	if !cfg.Rate.IsZero() {
		t.Fatalf("Rate = %s, want 0", cfg.Rate)
	}
}

func TestLoadExpandsTilde(t *testing.T) {
	home := t.TempDir()
	chdir(t, home)
	t.Setenv("HOME", home)
	t.Setenv(EnvLogPath, "~/kintai.log")
	t.Setenv(EnvRate, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(home, "kintai.log")
	if cfg.LogPath != want {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, want)
	}
}

func TestLoadParsesRate(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvRate, "35.50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Rate.String() != "35.5" {
		t.Fatalf("Rate = %s, want 35.5", cfg.Rate)
	}
}

func TestLoadRejectsBadRate(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvRate, "plenty")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want rate parse failure")
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	tmp := t.TempDir()
	logPath := filepath.Join(tmp, "from-dotenv.log")
	env := "KINTAI_LOG=" + logPath + "\nKINTAI_RATE=42\n"
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte(env), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	chdir(t, tmp)
	// Register restoration via Setenv, then clear for real: a set-but-empty
	// variable would still shadow the .env entry.
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvRate, "")
	os.Unsetenv(EnvLogPath)
	os.Unsetenv(EnvRate)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogPath != logPath {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, logPath)
	}
	if cfg.Rate.String() != "42" {
		t.Fatalf("Rate = %s, want 42", cfg.Rate)
	}
}

func TestLoadWarnsOnMalformedDotEnv(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("KINTAI@RATE=12\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	chdir(t, tmp)
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvRate, "7")

	var stderr bytes.Buffer
	cfg, err := load(&stderr)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "warning: load .env") {
		t.Fatalf("stderr = %q, want a malformed .env warning", stderr.String())
	}
	if cfg.Rate.String() != "7" {
		t.Fatalf("Rate = %s, want 7 from the environment", cfg.Rate)
	}
}

// chdir moves the test into dir and restores the original working directory
// on cleanup; testing.T.Chdir needs Go 1.24, newer than this module targets.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("Chdir back to %q: %v", oldwd, err)
		}
	})
}
