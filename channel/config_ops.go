package channel

import (
	"strings"

	"github.com/samber/lo"

	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/normalize"
)

type AccountDescription struct {
	AccountID  string `json:"accountId"`
	Name       string `json:"name,omitempty"`
	Enabled    bool   `json:"enabled"`
	Configured bool   `json:"configured"`
}

// ListAccountIDs always reports the single default account.
func (*Plugin) ListAccountIDs(core.Config) []string {
	return []string{core.DefaultAccountID}
}

func (*Plugin) DefaultAccountID() string {
	return core.DefaultAccountID
}

func (p *Plugin) ResolveAccount(cfg core.Config, accountID string) (core.Account, error) {
	return p.resolver.ResolveAccount(cfg, accountID)
}

// SetAccountEnabled returns a copy of cfg with the channel's enabled flag
// set, creating the channel block when it is absent.
func (*Plugin) SetAccountEnabled(cfg core.Config, enabled bool) core.Config {
	account, _ := cfg.Account()
	account.Enabled = &enabled
	return cfg.WithAccount(&account)
}

// DeleteAccount returns a copy of cfg without the channel block.
func (*Plugin) DeleteAccount(cfg core.Config) core.Config {
	return cfg.WithAccount(nil)
}

func (*Plugin) IsConfigured(account core.Account) bool {
	return account.Configured()
}

func (*Plugin) DescribeAccount(account core.Account) AccountDescription {
	return AccountDescription{
		AccountID:  account.AccountID,
		Name:       account.Name,
		Enabled:    account.Enabled,
		Configured: account.Configured(),
	}
}

// ResolveAllowFrom returns the allow list as written in the configuration.
func (p *Plugin) ResolveAllowFrom(cfg core.Config) ([]string, error) {
	account, err := p.ResolveAccount(cfg, "")
	if err != nil {
		return nil, err
	}
	return append([]string{}, account.Config.AllowFrom...), nil
}

// FormatAllowFrom trims entries, drops blanks and strips the whatsapp:
// prefix.
func (*Plugin) FormatAllowFrom(allowFrom []string) []string {
	trimmed := lo.Map(allowFrom, func(entry string, _ int) string {
		return strings.TrimSpace(entry)
	})
	present := lo.Filter(trimmed, func(entry string, _ int) bool {
		return entry != ""
	})
	return lo.Map(present, func(entry string, _ int) string {
		return normalize.StripPrefix(entry)
	})
}
