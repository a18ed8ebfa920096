package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

const (
	DefaultExpiringWindow = 30 * 24 * time.Hour
	DefaultTopDesired     = 5
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Engine captures knowledge engine configuration.
type Engine struct {
	ExpiringWindow time.Duration `yaml:"expiring_window"`
	TopDesired     int           `yaml:"top_desired"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	SnapshotPath   string        `yaml:"snapshot_path"`
	MetricsFile    string        `yaml:"metrics_file"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Engine {
	return Engine{
		ExpiringWindow: DefaultExpiringWindow,
		TopDesired:     DefaultTopDesired,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// FromEnv builds an Engine config from KNOWLEDGE_* environment variables
// so main stays lean.
func FromEnv() (Engine, error) {
	cfg := Defaults()
	var errs []error

	if v := os.Getenv("KNOWLEDGE_EXPIRING_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("KNOWLEDGE_EXPIRING_WINDOW: %w", err))
		}
		cfg.ExpiringWindow = d
	}
	if v := os.Getenv("KNOWLEDGE_TOP_DESIRED"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("KNOWLEDGE_TOP_DESIRED: %w", err))
		}
		cfg.TopDesired = n
	}
	cfg.LogLevel = getEnv("KNOWLEDGE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("KNOWLEDGE_LOG_FORMAT", cfg.LogFormat)
	cfg.SnapshotPath = getEnv("KNOWLEDGE_SNAPSHOT_PATH", cfg.SnapshotPath)
	cfg.MetricsFile = getEnv("KNOWLEDGE_METRICS_FILE", cfg.MetricsFile)

	if err := errors.Join(errs...); err != nil {
		return Engine{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid environment configuration")
	}
	return cfg, nil
}

// Load reads environment defaults and overlays the YAML file at path, if any.
// Fields absent from the file keep their environment value.
func Load(path string) (Engine, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Engine{}, err
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Engine{}, fmt.Errorf("open config %s: %w", path, err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Engine{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode config "+path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Engine{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Engine) Validate() error {
	if c.ExpiringWindow <= 0 {
		return dErrors.New(dErrors.CodeValidation, "expiring_window must be positive")
	}
	if c.TopDesired <= 0 {
		return dErrors.New(dErrors.CodeValidation, "top_desired must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return dErrors.New(dErrors.CodeValidation, "log_format must be json or text")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
