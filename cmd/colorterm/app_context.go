package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexisbeaulieu97/colorterm/internal/config"
	"github.com/alexisbeaulieu97/colorterm/internal/export"
	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	"github.com/alexisbeaulieu97/colorterm/internal/store"
)

// configKeyAnnotation marks a flag as an override for a configuration key.
const configKeyAnnotation = "colorterm_config_key"

// AppContext bundles the configuration and logger resolved once per invocation.
type AppContext struct {
	Config *config.Config
	Logger ports.Logger

	configPath string
	logLevel   string
	logFile    string
	verbose    bool
}

// NewAppContext returns a context holding defaults until Load runs.
func NewAppContext() *AppContext {
	return &AppContext{
		Config: config.Default(),
		Logger: logging.NewNoOpLogger(),
	}
}

// bindFlag makes flag name override the configuration key when it is set.
func bindFlag(cmd *cobra.Command, name, key string) {
	cmd.Flags().SetAnnotation(name, configKeyAnnotation, []string{key}) //nolint:errcheck
}

// Load resolves configuration for cmd from the config file, environment and
// any flags bound with bindFlag, then builds the logger.
func (a *AppContext) Load(cmd *cobra.Command) error {
	var opts []config.LoadOption
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && len(keys) > 0 {
			opts = append(opts, config.WithFlag(keys[0], f))
		}
	})
	if a.verbose {
		opts = append(opts, config.WithValue("log.level", "debug"))
	}

	cfg, err := config.Load(a.configPath, opts...)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Logger = logger
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) (ports.Logger, error) {
	logger, err := logging.New(logging.Options{
		Writer:        w,
		Level:         cfg.Level,
		HumanReadable: cfg.Human,
		Component:     "cli",
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// CommandContext attaches a fresh correlation ID to the command context and
// returns a logger scoped to component.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())

	logger := a.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return ctx, logger.With("command", component)
}

// Generator builds a palette generator from the generator settings.
func (a *AppContext) Generator(logger ports.Logger) *palette.Generator {
	opts := append(a.Config.Generator.Options(), palette.WithLogger(logger))
	return palette.NewGenerator(opts...)
}

// NewStore creates an empty store using the configured mode and target.
func (a *AppContext) NewStore(logger ports.Logger) *store.Store {
	return store.New(a.Generator(logger),
		store.WithMode(a.Config.Generator.GenerationMode()),
		store.WithTarget(a.Config.TargetSchema()),
		store.WithLogger(logger),
	)
}

// ExportClient creates a render service client from the export settings.
func (a *AppContext) ExportClient(logger ports.Logger) *export.Client {
	return export.NewClient(a.Config.Export.Endpoint,
		export.WithTimeout(a.Config.Export.Timeout),
		export.WithLogger(logger),
	)
}
