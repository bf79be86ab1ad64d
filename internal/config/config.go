package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the server configuration. Zero values fall back to defaults, so
// a partial file only overrides what it names.
type Config struct {
	Addr            string `yaml:"addr"`
	AllowOrigins    string `yaml:"allow_origins"`
	ClockSeconds    int    `yaml:"clock_seconds"`
	ReadBufferSize  int    `yaml:"read_buffer_size"`
	WriteBufferSize int    `yaml:"write_buffer_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		ClockSeconds:    600,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Load reads a YAML config file and fills anything it leaves out from
// Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.AllowOrigins == "" {
		c.AllowOrigins = def.AllowOrigins
	}
	if c.ClockSeconds <= 0 {
		c.ClockSeconds = def.ClockSeconds
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = def.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = def.WriteBufferSize
	}
	return c
}

// ClockTime is the per-side time budget as a duration.
func (c Config) ClockTime() time.Duration {
	return time.Duration(c.ClockSeconds) * time.Second
}
