package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/colorterm/internal/export"
	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

// EnvPrefix namespaces environment overrides: COLORTERM_EXPORT_ENDPOINT sets
// export.endpoint.
const EnvPrefix = "COLORTERM"

// LoadOption customises Load.
type LoadOption func(*viper.Viper) error

// WithFlag lets a command-line flag override key when the flag was set.
func WithFlag(key string, flag *pflag.Flag) LoadOption {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// WithValue forces key to value.
func WithValue(key string, value any) LoadOption {
	return func(v *viper.Viper) error {
		v.Set(key, value)
		return nil
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.human", false)

	v.SetDefault("generator.mode", string(palette.ModeCubehelix))
	v.SetDefault("generator.min_contrast", palette.DefaultMinContrast)
	v.SetDefault("generator.reset_after", palette.DefaultResetAfter)
	v.SetDefault("generator.max_iterations", palette.DefaultMaxIterations)

	v.SetDefault("target", string(schema.TargetIterm))

	v.SetDefault("export.endpoint", export.DefaultEndpoint)
	v.SetDefault("export.timeout", export.DefaultTimeout)
	v.SetDefault("export.output_dir", ".")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
}

// Load reads configuration from defaults, an optional YAML file, COLORTERM_
// environment variables and the given options, in increasing precedence, then
// validates the result. An empty path searches ./colorterm.yaml and the user
// config directory; a missing file there is not an error.
func Load(path string, opts ...LoadOption) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("colorterm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "colorterm"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, cterrors.NewParseError(path, err)
		}
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, cterrors.NewParseError(path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cterrors.NewParseError(v.ConfigFileUsed(), err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}
