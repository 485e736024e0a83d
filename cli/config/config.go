package config

import (
	"errors"
	"fmt"
	"time"
)

// Config represents an advent.yaml configuration file.
// All values are optional and act as defaults for advent solve flags.
// CLI flags always override config values.
type Config struct {
	Inputs   InputsConfig    `yaml:"inputs"`
	Output   OutputConfig    `yaml:"output"`
	Adapters []AdapterConfig `yaml:"adapters"`
	Archive  ArchiveConfig   `yaml:"archive"`
	Record   RecordConfig    `yaml:"record"`
	Log      LogConfig       `yaml:"log"`
}

// InputsConfig selects where puzzle inputs come from.
type InputsConfig struct {
	// Backend is fs, s3 or minio (default fs).
	Backend string `yaml:"backend"`
	// Path is a directory for fs, or bucket/prefix for s3 and minio.
	Path string `yaml:"path"`
	// TestPath holds testing inputs for fs (default: Path).
	TestPath    string `yaml:"test_path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	UseSSL      bool   `yaml:"use_ssl"`
	// CacheSize bounds the in-process input cache; 0 disables it.
	CacheSize int `yaml:"cache_size"`
}

// OutputConfig holds display defaults.
type OutputConfig struct {
	Format  string `yaml:"format"`
	NoColor bool   `yaml:"no_color"`
}

// AdapterConfig configures one answer adapter.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	HashKey string            `yaml:"hash_key,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// ArchiveConfig enables the report archive when Backend is set.
type ArchiveConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Dataset     string `yaml:"dataset"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// RecordConfig enables the msgpack record file when Path is set.
type RecordConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging defaults.
type LogConfig struct {
	Level string `yaml:"level"`
	// Format is json (default) or console.
	Format string `yaml:"format"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Validate checks enumerated values and required fields. Empty sections
// are valid.
func (c *Config) Validate() error {
	var errs []error

	switch c.Inputs.Backend {
	case "", "fs":
	case "s3", "minio":
		if c.Inputs.Path == "" {
			errs = append(errs, fmt.Errorf("inputs.path is required for backend %q", c.Inputs.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("inputs.backend must be fs, s3 or minio, got %q", c.Inputs.Backend))
	}
	if c.Inputs.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("inputs.cache_size must be >= 0, got %d", c.Inputs.CacheSize))
	}

	switch c.Output.Format {
	case "", "json", "yaml", "table", "pretty":
	default:
		errs = append(errs, fmt.Errorf("output.format must be json, yaml, table or pretty, got %q", c.Output.Format))
	}

	for i, a := range c.Adapters {
		switch a.Type {
		case "webhook", "redis":
		default:
			errs = append(errs, fmt.Errorf("adapters[%d].type must be webhook or redis, got %q", i, a.Type))
		}
		if a.URL == "" {
			errs = append(errs, fmt.Errorf("adapters[%d].url is required", i))
		}
		if a.Retries != nil && *a.Retries < 0 {
			errs = append(errs, fmt.Errorf("adapters[%d].retries must be >= 0", i))
		}
	}

	switch c.Archive.Backend {
	case "":
	case "fs", "s3":
		if c.Archive.Path == "" {
			errs = append(errs, fmt.Errorf("archive.path is required for backend %q", c.Archive.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("archive.backend must be fs or s3, got %q", c.Archive.Backend))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
