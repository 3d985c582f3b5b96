package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_GetSubmissionPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath:    ".",
				SubmissionPath: ".",
				Flags:          Flags{},
			},
			expected: ".",
		},
		{
			name: "with submission path flag",
			config: &Config{
				ProjectPath:    "/project",
				SubmissionPath: ".",
				Flags: Flags{
					SubmissionPath: "submissions",
				},
			},
			expected: "/project/submissions",
		},
		{
			name: "absolute submission path",
			config: &Config{
				ProjectPath:    "/project",
				SubmissionPath: ".",
				Flags: Flags{
					SubmissionPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
		{
			name: "configured submission path",
			config: &Config{
				ProjectPath:    "/project",
				SubmissionPath: "learners",
			},
			expected: "/project/learners",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSubmissionPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}

	if cfg.Topic != DefaultTopic {
		t.Errorf("expected Topic %s, got %s", DefaultTopic, cfg.Topic)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(Flags{ProjectPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %s, got %s", DefaultTimeout, cfg.Timeout)
	}
	if cfg.GetOutputPath() != filepath.Join(dir, DefaultOutputJSONDir, DefaultOutputJSONFile) {
		t.Errorf("unexpected output path %s", cfg.GetOutputPath())
	}
}

func TestLoad_FileWalkUpAndFlags(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "week1", "learners")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "topic: dll\nworkers: 8\ntimeout: 3s\noutput_dir: out\nignore: [skip]\ndatabase:\n  host: db.local\n  name: grades\n"
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Flags{ProjectPath: nested})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Processors != 8 {
		t.Errorf("expected 8 workers from file, got %d", cfg.Processors)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Timeout)
	}
	if cfg.OutputJSONDir != "out" || cfg.OutputJSONFile != DefaultOutputJSONFile {
		t.Errorf("unexpected output settings %s/%s", cfg.OutputJSONDir, cfg.OutputJSONFile)
	}
	if len(cfg.PathsToIgnore) != 1 || cfg.PathsToIgnore[0] != "skip" {
		t.Errorf("unexpected ignore list %v", cfg.PathsToIgnore)
	}
	if cfg.Database.Host != "db.local" || cfg.Database.Port != DefaultDBPort {
		t.Errorf("unexpected database %+v", cfg.Database)
	}

	cfg, err = Load(Flags{ProjectPath: nested, Processors: 2, Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Processors != 2 || cfg.Timeout != time.Second {
		t.Errorf("flags should override the file, got %d workers and %s", cfg.Processors, cfg.Timeout)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("workers: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(Flags{ProjectPath: dir}); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_DatabaseEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CSP_DB_HOST", "env-host")
	// registered for restore, then unset so the .env value applies
	t.Setenv("CSP_DB_PASSWORD", "")
	os.Unsetenv("CSP_DB_PASSWORD")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CSP_DB_PASSWORD=secret\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Flags{ProjectPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "env-host" {
		t.Errorf("expected env host, got %s", cfg.Database.Host)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("expected password from .env, got %q", cfg.Database.Password)
	}
}
