package core

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type EnvLoader interface {
	LoadEnv(ctx context.Context) (EnvOverrides, error)
}

type AccountResolver interface {
	Resolve(defaults AccountSettings, file *AccountConfig, env EnvOverrides) (AccountSettings, error)
}

// YAMLConfigProvider reads the host configuration snapshot from a YAML file.
// A missing path or missing file yields the defaults.
type YAMLConfigProvider struct {
	Path string
}

func NewYAMLConfigProvider(path string) *YAMLConfigProvider {
	return &YAMLConfigProvider{Path: strings.TrimSpace(path)}
}

func (p *YAMLConfigProvider) Load(_ context.Context, defaults Config) (Config, error) {
	if p == nil || p.Path == "" {
		return defaults, nil
	}
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return Config{}, fmt.Errorf("core: read config %s: %w", p.Path, err)
	}
	cfg := defaults
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("core: parse config %s: %w", p.Path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StaticConfigProvider returns a fixed snapshot.
type StaticConfigProvider struct {
	Config Config
}

func (p StaticConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.Config, nil
}

// ProcessEnvLoader reads overrides from the process environment.
type ProcessEnvLoader struct{}

func (ProcessEnvLoader) LoadEnv(context.Context) (EnvOverrides, error) {
	var env EnvOverrides
	if err := envconfig.Process("", &env); err != nil {
		return EnvOverrides{}, fmt.Errorf("core: load environment overrides: %w", err)
	}
	return env, nil
}

// StaticEnvLoader returns fixed overrides; useful for hosts that already
// parsed their environment and for tests.
type StaticEnvLoader struct {
	Env EnvOverrides
}

func (l StaticEnvLoader) LoadEnv(context.Context) (EnvOverrides, error) {
	return l.Env, nil
}

// GoOptionsResolver merges defaults < file < environment.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults AccountSettings, file *AccountConfig, env EnvOverrides) (AccountSettings, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultsToLayerMap(defaults),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			fileToLayerMap(file),
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("env", 20),
			envToLayerMap(env),
			opts.WithSnapshotID[map[string]any]("env"),
		),
	)
	if err != nil {
		return AccountSettings{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return AccountSettings{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[AccountSettings](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[AccountSettings]((*AccountSettings).Validate),
	)
	if err != nil {
		return AccountSettings{}, err
	}
	if err := resolved.Validate(); err != nil {
		return AccountSettings{}, err
	}
	return resolved, nil
}

func defaultsToLayerMap(s AccountSettings) map[string]any {
	return map[string]any{
		"name":           s.Name,
		"enabled":        s.Enabled,
		"relay_url":      s.RelayURL,
		"webhook_secret": s.WebhookSecret,
		"webhook_path":   s.WebhookPath,
		"dm_policy":      s.DMPolicy,
		"allow_from":     append([]string{}, s.AllowFrom...),
	}
}

func fileToLayerMap(cfg *AccountConfig) map[string]any {
	layer := map[string]any{}
	if cfg == nil {
		return layer
	}
	if name := strings.TrimSpace(cfg.Name); name != "" {
		layer["name"] = name
	}
	if cfg.Enabled != nil {
		layer["enabled"] = *cfg.Enabled
	}
	if url := cfg.URL(); url != "" {
		layer["relay_url"] = url
	}
	if secret := strings.TrimSpace(cfg.WebhookSecret); secret != "" {
		layer["webhook_secret"] = secret
	}
	if path := strings.TrimSpace(cfg.WebhookPath); path != "" {
		layer["webhook_path"] = path
	}
	if policy := strings.TrimSpace(string(cfg.DMPolicy)); policy != "" {
		layer["dm_policy"] = policy
	}
	if entries := cfg.AllowFrom.Strings(); len(entries) > 0 {
		layer["allow_from"] = entries
	}
	return layer
}

func envToLayerMap(env EnvOverrides) map[string]any {
	layer := map[string]any{}
	if url := strings.TrimSpace(env.RelayURL); url != "" {
		layer["relay_url"] = url
	}
	if secret := strings.TrimSpace(env.WebhookSecret); secret != "" {
		layer["webhook_secret"] = secret
	}
	if path := strings.TrimSpace(env.WebhookPath); path != "" {
		layer["webhook_path"] = path
	}
	return layer
}
