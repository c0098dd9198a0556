package core

import (
	"context"
	"strings"
)

// Resolver turns configuration snapshots into Accounts. The environment layer
// is captured once at construction and reused for every snapshot.
type Resolver struct {
	defaults AccountSettings
	env      EnvOverrides
	resolver AccountResolver
}

type ResolverOption func(*Resolver)

func WithAccountDefaults(defaults AccountSettings) ResolverOption {
	return func(r *Resolver) {
		r.defaults = defaults
	}
}

func WithEnvOverrides(env EnvOverrides) ResolverOption {
	return func(r *Resolver) {
		r.env = env
	}
}

func WithAccountResolver(resolver AccountResolver) ResolverOption {
	return func(r *Resolver) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		defaults: DefaultAccountSettings(),
		resolver: GoOptionsResolver{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// NewResolverFromEnv captures the environment through loader.
func NewResolverFromEnv(ctx context.Context, loader EnvLoader, opts ...ResolverOption) (*Resolver, error) {
	if loader == nil {
		loader = ProcessEnvLoader{}
	}
	env, err := loader.LoadEnv(ctx)
	if err != nil {
		return nil, err
	}
	return NewResolver(append([]ResolverOption{WithEnvOverrides(env)}, opts...)...), nil
}

func (r *Resolver) Env() EnvOverrides {
	if r == nil {
		return EnvOverrides{}
	}
	return r.env
}

// ResolveAccount merges cfg with the captured environment. An empty accountID
// resolves the default account.
func (r *Resolver) ResolveAccount(cfg Config, accountID string) (Account, error) {
	if r == nil {
		r = NewResolver()
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		accountID = DefaultAccountID
	}

	var file *AccountConfig
	raw, hasBlock := cfg.Account()
	if hasBlock {
		file = &raw
	}

	settings, err := r.resolver.Resolve(r.defaults, file, r.env)
	if err != nil {
		return Account{}, err
	}

	return Account{
		AccountID:     accountID,
		Name:          strings.TrimSpace(settings.Name),
		Enabled:       settings.Enabled,
		RelayURL:      strings.TrimSpace(settings.RelayURL),
		WebhookSecret: settings.WebhookSecret,
		WebhookPath:   strings.TrimSpace(settings.WebhookPath),
		DMPolicy:      DMPolicy(settings.DMPolicy),
		AllowFrom:     append([]string(nil), settings.AllowFrom...),
		Config:        raw,
	}, nil
}
