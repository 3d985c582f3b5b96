package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath    string `yaml:"-"`
	SubmissionPath string `yaml:"submissions,omitempty"`
	Topic          string `yaml:"topic,omitempty"`

	// Output settings
	OutputJSONFile string `yaml:"output_file,omitempty"`
	OutputJSONDir  string `yaml:"output_dir,omitempty"`

	// Execution settings
	Processors      int           `yaml:"workers,omitempty"`
	Timeout         time.Duration `yaml:"timeout,omitempty"`
	AllowedPackages []string      `yaml:"allowed_packages,omitempty"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"ignore,omitempty"`

	// Grade history database
	Database DatabaseConfig `yaml:"database,omitempty"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// DatabaseConfig locates the MySQL grade history
type DatabaseConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     string `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath    string
	SubmissionPath string
	Topic          string
	Processors     int
	Filter         string
	Checks         string
	Timeout        time.Duration
	FailFast       bool
	Reference      bool
	Record         bool
	OpenFails      bool
	Quiet          bool
	Verbose        bool

	// list and history
	ShowChecks      bool
	ShowSubmissions bool
	Limit           int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SubmissionPath: DefaultSubmissionPath,
		Topic:          DefaultTopic,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Timeout:        DefaultTimeout,
		Database: DatabaseConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds the config for a run: defaults, then the project's .csp.yaml, then the
// project's .env and CSP_DB_* environment, then flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	data, err := findConfigFile(cfg.ProjectPath)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
		}
		merge(cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	// .env is optional; variables already set in the environment win
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	cfg.applyEnv()

	cfg.Flags = flags
	if flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}
	if flags.Topic != "" {
		cfg.Topic = flags.Topic
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}

	return cfg, nil
}

// findConfigFile walks up from dir looking for ConfigFileName.
// Returns os.ErrNotExist if none is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxConfigDepth; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// merge copies the non-zero values of src onto dst
func merge(dst, src *Config) {
	if src.SubmissionPath != "" {
		dst.SubmissionPath = src.SubmissionPath
	}
	if src.Topic != "" {
		dst.Topic = src.Topic
	}
	if src.OutputJSONFile != "" {
		dst.OutputJSONFile = src.OutputJSONFile
	}
	if src.OutputJSONDir != "" {
		dst.OutputJSONDir = src.OutputJSONDir
	}
	if src.Processors > 0 {
		dst.Processors = src.Processors
	}
	if src.Timeout > 0 {
		dst.Timeout = src.Timeout
	}
	if len(src.AllowedPackages) > 0 {
		dst.AllowedPackages = src.AllowedPackages
	}
	if len(src.PathsToIgnore) > 0 {
		dst.PathsToIgnore = src.PathsToIgnore
	}
	setIf(&dst.Database.Host, src.Database.Host)
	setIf(&dst.Database.Port, src.Database.Port)
	setIf(&dst.Database.User, src.Database.User)
	setIf(&dst.Database.Password, src.Database.Password)
	setIf(&dst.Database.Name, src.Database.Name)
}

func (c *Config) applyEnv() {
	setIf(&c.Database.Host, os.Getenv("CSP_DB_HOST"))
	setIf(&c.Database.Port, os.Getenv("CSP_DB_PORT"))
	setIf(&c.Database.User, os.Getenv("CSP_DB_USERNAME"))
	setIf(&c.Database.Password, os.Getenv("CSP_DB_PASSWORD"))
	setIf(&c.Database.Name, os.Getenv("CSP_DB_DATABASE"))
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// GetSubmissionPath returns the submission path, using flag if provided
func (c *Config) GetSubmissionPath() string {
	if c.Flags.SubmissionPath != "" {
		// If SubmissionPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.SubmissionPath) {
			return c.Flags.SubmissionPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SubmissionPath)
	}

	if filepath.IsAbs(c.SubmissionPath) {
		return c.SubmissionPath
	}
	return filepath.Join(c.ProjectPath, c.SubmissionPath)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and fails use the same file).
// Resolves to an absolute path so run and fails always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
