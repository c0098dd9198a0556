package channel

import (
	"context"

	"github.com/goliatone/go-whatsapp-kapso/core"
)

type LogoutResult struct {
	Cleared   bool `json:"cleared"`
	EnvToken  bool `json:"envToken"`
	LoggedOut bool `json:"loggedOut"`
}

// StartAccount has no connection to open; inbound traffic arrives through
// the registered webhook.
func (p *Plugin) StartAccount(ctx context.Context, account core.Account) error {
	core.Log(ctx, p.logger, "debug", "webhook channel has no connection to start", map[string]any{
		"account_id": account.AccountID,
	})
	return nil
}

// LogoutAccount clears the channel block from cfg. Environment values are
// never touched.
func (p *Plugin) LogoutAccount(cfg core.Config) (core.Config, LogoutResult) {
	return p.DeleteAccount(cfg), LogoutResult{Cleared: true, EnvToken: false, LoggedOut: true}
}
