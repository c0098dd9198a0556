package channel

import (
	"context"

	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/relay"
)

const (
	DisplayName  = "WhatsApp (Kapso)"
	Description  = "WhatsApp messaging via Kapso.ai (no pairing required)"
	ReloadPrefix = "channels.whatsappKapso"

	ChatTypeDirect = "direct"
)

type Meta struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	QuickstartAllowFrom bool   `json:"quickstartAllowFrom"`
}

type Capabilities struct {
	ChatTypes      []string `json:"chatTypes"`
	Reactions      bool     `json:"reactions"`
	Threads        bool     `json:"threads"`
	Media          bool     `json:"media"`
	Polls          bool     `json:"polls"`
	NativeCommands bool     `json:"nativeCommands"`
	BlockStreaming bool     `json:"blockStreaming"`
}

// Sender delivers one text message through the relay.
type Sender interface {
	Send(ctx context.Context, to string, text string, account core.Account) core.SendResult
}

type Plugin struct {
	resolver *core.Resolver
	sender   Sender
	logger   core.Logger
}

type Option func(*Plugin)

func WithResolver(resolver *core.Resolver) Option {
	return func(p *Plugin) {
		if resolver != nil {
			p.resolver = resolver
		}
	}
}

func WithSender(sender Sender) Option {
	return func(p *Plugin) {
		if sender != nil {
			p.sender = sender
		}
	}
}

func WithLogger(logger core.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

func New(opts ...Option) *Plugin {
	p := &Plugin{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.logger = core.ResolveLogger("kapso.channel", nil, p.logger)
	if p.resolver == nil {
		p.resolver = core.NewResolver()
	}
	if p.sender == nil {
		p.sender = relay.NewClient(relay.WithLogger(p.logger))
	}
	return p
}

func (*Plugin) ID() string { return core.ChannelID }

func (*Plugin) Meta() Meta {
	return Meta{
		Name:                DisplayName,
		Description:         Description,
		QuickstartAllowFrom: true,
	}
}

func (*Plugin) Capabilities() Capabilities {
	return Capabilities{ChatTypes: []string{ChatTypeDirect}}
}

// ReloadPrefixes lists the configuration prefixes whose change requires the
// host to reload this channel.
func (*Plugin) ReloadPrefixes() []string {
	return []string{ReloadPrefix}
}
