package webhooks

import (
	"context"

	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/inbound"
)

// RegisterWebhook mounts a Handler for account at its configured webhook
// path and returns the unregister function from the registry.
func RegisterWebhook(registry *inbound.Registry, account core.Account, router core.MessageRouter, opts ...Option) func() {
	handler := NewHandler(account, router, opts...)
	path := inbound.NormalizePath(account.WebhookPath)
	fields := map[string]any{
		"account_id": account.AccountID,
		"path":       path,
	}
	if account.WebhookSecret == "" {
		core.Log(context.Background(), handler.logger, "warn", "webhook secret not configured, all requests will be rejected", fields)
	}
	if registry == nil {
		core.Log(context.Background(), handler.logger, "error", "webhook not registered, route registry is nil", fields)
		return func() {}
	}
	unregister := registry.Register(path, handler)
	core.Log(context.Background(), handler.logger, "info", "webhook registered", fields)
	return unregister
}
