package core

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AccountConfig is the channels.whatsappKapso block as written in the host
// configuration file. Pointer fields distinguish "unset" from zero values.
type AccountConfig struct {
	Name          string    `yaml:"name,omitempty" koanf:"name" mapstructure:"name"`
	Enabled       *bool     `yaml:"enabled,omitempty" koanf:"enabled" mapstructure:"enabled"`
	RemoteCodeURL string    `yaml:"remoteCodeUrl,omitempty" koanf:"remote_code_url" mapstructure:"remote_code_url"`
	RelayURL      string    `yaml:"relayUrl,omitempty" koanf:"relay_url" mapstructure:"relay_url"`
	WebhookSecret string    `yaml:"webhookSecret,omitempty" koanf:"webhook_secret" mapstructure:"webhook_secret"`
	WebhookPath   string    `yaml:"webhookPath,omitempty" koanf:"webhook_path" mapstructure:"webhook_path"`
	DMPolicy      DMPolicy  `yaml:"dmPolicy,omitempty" koanf:"dm_policy" mapstructure:"dm_policy"`
	AllowFrom     AllowList `yaml:"allowFrom,omitempty" koanf:"allow_from" mapstructure:"allow_from"`
}

// URL returns the relay base URL, preferring remoteCodeUrl over relayUrl.
func (c AccountConfig) URL() string {
	if url := strings.TrimSpace(c.RemoteCodeURL); url != "" {
		return url
	}
	return strings.TrimSpace(c.RelayURL)
}

func (c AccountConfig) clone() AccountConfig {
	out := c
	if c.Enabled != nil {
		enabled := *c.Enabled
		out.Enabled = &enabled
	}
	out.AllowFrom = append(AllowList(nil), c.AllowFrom...)
	return out
}

type ChannelsConfig struct {
	WhatsappKapso *AccountConfig `yaml:"whatsappKapso,omitempty" koanf:"whatsapp_kapso" mapstructure:"whatsapp_kapso"`
}

// Config is the host configuration snapshot this channel reads. Values are
// treated as immutable; mutating helpers return a modified copy.
type Config struct {
	Channels ChannelsConfig `yaml:"channels" koanf:"channels" mapstructure:"channels"`
}

func DefaultConfig() Config {
	return Config{}
}

// Account returns a copy of the channel block, if any.
func (c Config) Account() (AccountConfig, bool) {
	if c.Channels.WhatsappKapso == nil {
		return AccountConfig{}, false
	}
	return c.Channels.WhatsappKapso.clone(), true
}

// WithAccount returns a copy of c with the channel block replaced.
func (c Config) WithAccount(account *AccountConfig) Config {
	next := c
	if account == nil {
		next.Channels.WhatsappKapso = nil
		return next
	}
	cloned := account.clone()
	next.Channels.WhatsappKapso = &cloned
	return next
}

func (c Config) Validate() error {
	account, ok := c.Account()
	if !ok {
		return nil
	}
	if err := validatePolicy(account.DMPolicy); err != nil {
		return err
	}
	return nil
}

// AccountSettings is the merged result of the default, file and environment
// layers.
type AccountSettings struct {
	Name          string   `koanf:"name" mapstructure:"name"`
	Enabled       bool     `koanf:"enabled" mapstructure:"enabled"`
	RelayURL      string   `koanf:"relay_url" mapstructure:"relay_url" validate:"omitempty,url"`
	WebhookSecret string   `koanf:"webhook_secret" mapstructure:"webhook_secret"`
	WebhookPath   string   `koanf:"webhook_path" mapstructure:"webhook_path"`
	DMPolicy      string   `koanf:"dm_policy" mapstructure:"dm_policy" validate:"omitempty,oneof=pairing allowlist open disabled"`
	AllowFrom     []string `koanf:"allow_from" mapstructure:"allow_from"`
}

func DefaultAccountSettings() AccountSettings {
	return AccountSettings{
		Enabled:     true,
		WebhookPath: DefaultWebhookPath,
		DMPolicy:    string(DMPolicyOpen),
		AllowFrom:   []string{},
	}
}

func (s *AccountSettings) Validate() error {
	if s == nil {
		return fmt.Errorf("core: account settings are required")
	}
	if err := validate.Struct(s); err != nil {
		return configValidationError(err)
	}
	return nil
}

// EnvOverrides holds the environment layer. Empty values never override.
type EnvOverrides struct {
	RelayURL      string `envconfig:"REMOTE_CODE_URL"`
	WebhookSecret string `envconfig:"OPENCLAW_WEBHOOK_SECRET"`
	WebhookPath   string `envconfig:"KAPSO_WEBHOOK_PATH"`
}

func validatePolicy(policy DMPolicy) error {
	switch policy {
	case "", DMPolicyPairing, DMPolicyAllowlist, DMPolicyOpen, DMPolicyDisabled:
		return nil
	default:
		return configError(
			fmt.Sprintf("core: dm_policy %q is invalid", policy),
			map[string]any{"dm_policy": string(policy)},
		)
	}
}
