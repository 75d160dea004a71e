// Package config provides the greet configuration loader.
// Config is loaded by merging defaults → $GREET_HOME/config.yaml → greet.yaml → GREET_* env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/f9-o/greet/internal/greeting"
	"github.com/f9-o/greet/pkg/errs"
)

// ProjectFile is the project config file name discovered by walking up from the CWD.
const ProjectFile = "greet.yaml"

// Defaults contains factory-default values applied before any config file is loaded.
var Defaults = map[string]any{
	"greeter.name":        greeting.DefaultName,
	"history.enabled":     true,
	"history.max_records": 1000,
	"log.level":           "info",
	"log.format":          "text",
}

// ─────────────────────────────────────────────────────────────────────────────
// Config types
// ─────────────────────────────────────────────────────────────────────────────

// Config is the fully-decoded configuration.
type Config struct {
	Greeter GreeterConfig `mapstructure:"greeter"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`

	// Path of the project config that was merged, empty if none.
	Source string `mapstructure:"-"`
}

// GreeterConfig holds the default name greeted.
type GreeterConfig struct {
	Name string `mapstructure:"name"`
}

// HistoryConfig controls the greeting history kept in the state store.
type HistoryConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxRecords int  `mapstructure:"max_records"` // 0 = unbounded
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | text
}

// ─────────────────────────────────────────────────────────────────────────────
// Loader
// ─────────────────────────────────────────────────────────────────────────────

// Load discovers and loads the configuration. An explicit path must exist;
// a discovered greet.yaml or global config is merged only when present.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	for k, val := range Defaults {
		v.SetDefault(k, val)
	}

	// GREET_GREETER_NAME → greeter.name
	v.SetEnvPrefix("GREET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// An empty GREET_GREETER_NAME greets "" rather than falling through.
	v.AllowEmptyEnv(true)

	globalCfg := filepath.Join(Home(), "config.yaml")
	if _, err := os.Stat(globalCfg); err == nil {
		v.SetConfigFile(globalCfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.Wrap(err, errs.ErrConfigRead, "config.global")
		}
	}

	source := explicitPath
	if source == "" {
		if path, err := discoverProjectConfig(); err == nil {
			source = path
		}
	}
	if source != "" {
		v.SetConfigFile(source)
		if err := v.MergeInConfig(); err != nil {
			return nil, errs.New(errs.ErrConfigRead, "config.project", err).
				WithResource(source).
				WithAdvice("check the YAML syntax or pass a different --config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(err, errs.ErrConfigRead, "config.unmarshal")
	}
	cfg.Source = source

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate performs semantic validation on a loaded config.
// The greeter name is deliberately unchecked: any string, including "", is valid.
func Validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errs.Newf(errs.ErrConfigInvalid, "config.validate", "unknown log.level %q", cfg.Log.Level).
			WithAdvice("use one of: debug, info, warn, error")
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return errs.Newf(errs.ErrConfigInvalid, "config.validate", "unknown log.format %q", cfg.Log.Format).
			WithAdvice("use text or json")
	}
	if cfg.History.MaxRecords < 0 {
		return errs.Newf(errs.ErrConfigInvalid, "config.validate", "history.max_records must be >= 0, got %d", cfg.History.MaxRecords)
	}
	return nil
}

// Default returns a Config populated from Defaults only.
func Default() *Config {
	return &Config{
		Greeter: GreeterConfig{Name: greeting.DefaultName},
		History: HistoryConfig{Enabled: true, MaxRecords: 1000},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

// discoverProjectConfig walks up from the CWD looking for greet.yaml.
func discoverProjectConfig() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s not found (searched up from %s)", ProjectFile, start)
}

// Home returns the greet home directory: $GREET_HOME, else ~/.greet.
func Home() string {
	if h := os.Getenv("GREET_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".greet"
	}
	return filepath.Join(home, ".greet")
}

// DefaultConfigTemplate is the content written by `greet init`.
const DefaultConfigTemplate = `# greet.yaml — greeter settings
greeter:
  name: 4coder

history:
  enabled: true
  max_records: 1000

log:
  level: info
  format: text
`
