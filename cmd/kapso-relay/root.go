package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	kapso "github.com/goliatone/go-whatsapp-kapso"
	"github.com/goliatone/go-whatsapp-kapso/adapters/gologger"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

type rootOptions struct {
	configPath string
	envFiles   []string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "kapso-relay",
		Short:         "WhatsApp channel adapter for the Kapso relay",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "kapso.yaml", "path to the channel configuration file")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files loaded before resolving (default .env when present)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	root.AddCommand(
		newServeCommand(opts),
		newSendCommand(opts),
		newNormalizeCommand(opts),
		newStatusCommand(opts),
	)
	return root
}

type app struct {
	provider *gologger.Provider
	facade   *kapso.Facade
}

// load reads dotenv files, the YAML snapshot and the process environment,
// then builds the facade.
func (o *rootOptions) load(ctx context.Context, extra ...kapso.Option) (*app, error) {
	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	logger := gologger.FromLevel(o.logLevel)
	provider := gologger.NewProvider(logger)

	cfg, err := core.NewYAMLConfigProvider(o.configPath).Load(ctx, core.DefaultConfig())
	if err != nil {
		return nil, err
	}
	resolver, err := core.NewResolverFromEnv(ctx, core.ProcessEnvLoader{})
	if err != nil {
		return nil, err
	}

	opts := append([]kapso.Option{
		kapso.WithResolver(resolver),
		kapso.WithLogger(logger),
		kapso.WithLoggerProvider(provider),
	}, extra...)
	facade, err := kapso.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &app{provider: provider, facade: facade}, nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
