// internal/config/config.go
//
// This package handles configuration and the .conclave directory structure.
// Every project reviewed with Conclave gets a .conclave/ folder in its root
// holding the config file, logs, and custom rule packs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// ConclaveDir is the name of the directory we create in each project.
	ConclaveDir = ".conclave"

	defaultHealthThreshold = 50
	defaultTimeoutSeconds  = 300
	defaultMaxParallel     = 8
)

const defaultProjectConfigYAML = `# conclave project configuration
version: 1

swarm:
  # Domains to staff with evaluators. Remove entries to shrink the swarm.
  domains:
    - solution_architecture
    - technical_architecture
    - security_architecture
    - data_architecture
    - integration_architecture
    - infrastructure_architecture
    - costing
    - application_portfolio
  # Evaluators reporting below this health score count as unhealthy.
  health_threshold: 50
  # Default review timeout in seconds when a request does not declare one.
  timeout_seconds: 300
  # Upper bound on concurrently dispatched evaluator tasks.
  max_parallel: 8

rules:
  # Custom rule packs for the generic evaluator, relative to the project root.
  path: .conclave/rules

api:
  # HTTP review API. Disabled by default; the CLI and TUI work without it.
  enabled: false
  host: 127.0.0.1
  port: 8600
`

// SwarmConfig captures swarm-wide runtime settings from config.yaml.
type SwarmConfig struct {
	Domains         []string `yaml:"domains"`
	HealthThreshold float64  `yaml:"health_threshold"`
	TimeoutSeconds  int      `yaml:"timeout_seconds"`
	MaxParallel     int      `yaml:"max_parallel"`
}

// RulesConfig locates custom rule packs for the generic evaluator.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// APIConfig controls the optional HTTP review API. Enabled is a pointer so an
// absent key can be told apart from an explicit false.
type APIConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// ProjectConfig models .conclave/config.yaml.
type ProjectConfig struct {
	Version int         `yaml:"version"`
	Swarm   SwarmConfig `yaml:"swarm"`
	Rules   RulesConfig `yaml:"rules"`
	API     APIConfig   `yaml:"api"`
}

// envOverrides are applied after the YAML file so operators can tune a run
// without editing the project config.
type envOverrides struct {
	HealthThreshold float64 `env:"CONCLAVE_HEALTH_THRESHOLD"`
	TimeoutSeconds  int     `env:"CONCLAVE_TIMEOUT_SECONDS"`
	MaxParallel     int     `env:"CONCLAVE_MAX_PARALLEL"`
	RulesPath       string  `env:"CONCLAVE_RULES_PATH"`
}

// Config holds the runtime configuration for Conclave.
type Config struct {
	// ProjectDir is the directory where the user ran `conclave` from.
	ProjectDir string

	// ConclaveProjectDir is ProjectDir/.conclave.
	ConclaveProjectDir string

	Project ProjectConfig
}

// InitConclaveDir creates the .conclave directory structure in the given
// project directory. Called on every CLI start; existing files are kept.
func InitConclaveDir(projectDir string) error {
	conclaveDir := filepath.Join(projectDir, ConclaveDir)
	dirs := []string{
		filepath.Join(conclaveDir, "logs"),
		filepath.Join(conclaveDir, "rules"),
		filepath.Join(conclaveDir, "requests"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(conclaveDir, "config.yaml"))
}

// New creates a Config populated from the project file plus environment
// overrides.
func New(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		ConclaveProjectDir: filepath.Join(projectDir, ConclaveDir),
		Project:            defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ConclaveProjectDir, "logs")
}

// RulesDir returns the directory holding custom rule packs.
func (c *Config) RulesDir() string {
	path := strings.TrimSpace(c.Project.Rules.Path)
	if path == "" {
		return filepath.Join(c.ConclaveProjectDir, "rules")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(c.ProjectDir, path))
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ConclaveProjectDir, "config.yaml")
}

// Domains returns the configured evaluator domains.
func (c *Config) Domains() []string {
	return c.Project.Swarm.Domains
}

// HealthThreshold returns the score below which an evaluator counts as
// unhealthy.
func (c *Config) HealthThreshold() float64 {
	return c.Project.Swarm.HealthThreshold
}

// DefaultTimeout returns the review timeout applied when a request declares
// none.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.Project.Swarm.TimeoutSeconds) * time.Second
}

// MaxParallel caps concurrent evaluator dispatch.
func (c *Config) MaxParallel() int {
	return c.Project.Swarm.MaxParallel
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var ovr envOverrides
	if err := env.Parse(&ovr); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	if ovr.HealthThreshold > 0 {
		c.Project.Swarm.HealthThreshold = ovr.HealthThreshold
	}
	if ovr.TimeoutSeconds > 0 {
		c.Project.Swarm.TimeoutSeconds = ovr.TimeoutSeconds
	}
	if ovr.MaxParallel > 0 {
		c.Project.Swarm.MaxParallel = ovr.MaxParallel
	}
	if strings.TrimSpace(ovr.RulesPath) != "" {
		c.Project.Rules.Path = ovr.RulesPath
	}
	return c.Project.validate()
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Swarm: SwarmConfig{
			HealthThreshold: defaultHealthThreshold,
			TimeoutSeconds:  defaultTimeoutSeconds,
			MaxParallel:     defaultMaxParallel,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Swarm.HealthThreshold == 0 {
		pc.Swarm.HealthThreshold = defaultHealthThreshold
	}
	if pc.Swarm.TimeoutSeconds == 0 {
		pc.Swarm.TimeoutSeconds = defaultTimeoutSeconds
	}
	if pc.Swarm.MaxParallel == 0 {
		pc.Swarm.MaxParallel = defaultMaxParallel
	}
}

func (pc ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Swarm.HealthThreshold < 0 || pc.Swarm.HealthThreshold > 100 {
		return fmt.Errorf("swarm.health_threshold must be within [0, 100]")
	}
	if pc.Swarm.TimeoutSeconds < 0 {
		return fmt.Errorf("swarm.timeout_seconds must be >= 0")
	}
	if pc.Swarm.MaxParallel < 1 {
		return fmt.Errorf("swarm.max_parallel must be >= 1")
	}
	for i, domain := range pc.Swarm.Domains {
		if strings.TrimSpace(domain) == "" {
			return fmt.Errorf("swarm.domains[%d] is empty", i)
		}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
