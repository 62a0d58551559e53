package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
)

// Config represents the full colorterm configuration document.
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Target    string          `mapstructure:"target" yaml:"target" validate:"required,target_schema"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
	Human bool   `mapstructure:"human" yaml:"human"`
}

// GeneratorConfig tunes palette generation.
type GeneratorConfig struct {
	Mode          string  `mapstructure:"mode" yaml:"mode" validate:"required,generation_mode"`
	MinContrast   float64 `mapstructure:"min_contrast" yaml:"min_contrast" validate:"gte=1,lte=21"`
	ResetAfter    int     `mapstructure:"reset_after" yaml:"reset_after" validate:"gte=1"`
	MaxIterations int     `mapstructure:"max_iterations" yaml:"max_iterations" validate:"gtefield=ResetAfter"`
}

// ExportConfig points at the render service.
type ExportConfig struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`
	OutputDir string        `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
}

// ServerConfig configures `colorterm serve`.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr" validate:"required,hostname_port"`
	RateLimit    float64       `mapstructure:"rate_limit" yaml:"rate_limit" validate:"gt=0"`
	Burst        int           `mapstructure:"burst" yaml:"burst" validate:"gte=1"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gt=0"`

	// TrustedProxies are the reverse proxies allowed to set X-Forwarded-For.
	TrustedProxies []string `mapstructure:"trusted_proxies" yaml:"trusted_proxies" validate:"dive,cidr|ip"`
}

// GenerationMode returns the configured generation mode.
func (c GeneratorConfig) GenerationMode() palette.Mode {
	return palette.ParseMode(c.Mode)
}

// Options converts the settings into generator options.
func (c GeneratorConfig) Options() []palette.Option {
	return []palette.Option{
		palette.WithMinContrast(c.MinContrast),
		palette.WithResetAfter(c.ResetAfter),
		palette.WithMaxIterations(c.MaxIterations),
	}
}

// TargetSchema returns the configured target.
func (c *Config) TargetSchema() schema.Target {
	return schema.Target(c.Target)
}

// Dump renders the effective configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}
