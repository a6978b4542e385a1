package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/henderiw/rangekit/pkg/seqfile"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults of the rangekit command. Flags override it.
type Config struct {
	// Digits is the zero padding of sequenced file names.
	Digits int `yaml:"digits"`
	// Capacity is the number of lines kept by tail.
	Capacity  int    `yaml:"capacity"`
	Basename  string `yaml:"basename"`
	Extension string `yaml:"extension"`
	LogLevel  string `yaml:"logLevel"`
}

func Default() *Config {
	return &Config{
		Digits:    seqfile.DefaultDigits,
		Capacity:  10,
		Basename:  "file",
		Extension: ".txt",
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (r *Config) Validate() error {
	var errm error
	if r.Digits < 0 {
		errm = errors.Join(errm, fmt.Errorf("digits cannot be negative, got: %d", r.Digits))
	}
	if r.Capacity < 1 {
		errm = errors.Join(errm, fmt.Errorf("capacity must be at least 1, got: %d", r.Capacity))
	}
	switch r.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errm = errors.Join(errm, fmt.Errorf("unknown log level %q", r.LogLevel))
	}
	return errm
}
