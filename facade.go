package kapso

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-whatsapp-kapso/adapters/gocommand"
	"github.com/goliatone/go-whatsapp-kapso/channel"
	"github.com/goliatone/go-whatsapp-kapso/command"
	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/inbound"
	"github.com/goliatone/go-whatsapp-kapso/relay"
	"github.com/goliatone/go-whatsapp-kapso/transport"
	"github.com/goliatone/go-whatsapp-kapso/webhooks"
)

type Commands struct {
	SendText     *command.SendTextCommand
	RouteInbound *command.RouteInboundCommand
}

type Queries struct {
	ResolveTarget *command.ResolveTargetQuery
}

// Facade holds one configuration snapshot and the components built from it.
type Facade struct {
	cfg      core.Config
	account  core.Account
	plugin   *channel.Plugin
	relay    *relay.Client
	registry *inbound.Registry
	router   core.MessageRouter
	logger   core.Logger
	provider core.LoggerProvider
	metrics  core.MetricsRecorder
	commands Commands
	queries  Queries
}

type Option func(*options)

type options struct {
	logger   core.Logger
	provider core.LoggerProvider
	resolver *core.Resolver
	registry *inbound.Registry
	router   core.MessageRouter
	handler  core.MessageRouter
	doer     transport.HTTPDoer
	metrics  core.MetricsRecorder
}

func WithLogger(logger core.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

func WithResolver(resolver *core.Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

func WithRegistry(registry *inbound.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithRouter replaces the webhook router. By default inbound messages are
// dispatched as command.RouteInboundMessage on the go-command dispatcher.
func WithRouter(router core.MessageRouter) Option {
	return func(o *options) {
		o.router = router
	}
}

// WithInboundHandler sets the host ingestion target served by the
// RouteInbound command.
func WithInboundHandler(handler core.MessageRouter) Option {
	return func(o *options) {
		o.handler = handler
	}
}

func WithHTTPClient(doer transport.HTTPDoer) Option {
	return func(o *options) {
		o.doer = doer
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(o *options) {
		o.metrics = recorder
	}
}

// New resolves the account from cfg and builds the channel components.
func New(cfg core.Config, opts ...Option) (*Facade, error) {
	o := options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = core.NewResolver()
	}
	if o.metrics == nil {
		o.metrics = core.NopMetricsRecorder{}
	}
	if o.router == nil {
		o.router = command.NewDispatchRouter()
	}

	f := &Facade{
		cfg:      cfg,
		router:   o.router,
		provider: o.provider,
		metrics:  o.metrics,
		logger:   core.ResolveLogger("kapso", o.provider, o.logger),
	}

	relayOpts := []relay.Option{
		relay.WithLogger(f.componentLogger("kapso.relay", o.logger)),
		relay.WithMetricsRecorder(o.metrics),
	}
	if o.doer != nil {
		relayOpts = append(relayOpts, relay.WithHTTPClient(o.doer))
	}
	f.relay = relay.NewClient(relayOpts...)

	f.plugin = channel.New(
		channel.WithResolver(o.resolver),
		channel.WithSender(f.relay),
		channel.WithLogger(f.componentLogger("kapso.channel", o.logger)),
	)

	account, err := f.plugin.ResolveAccount(cfg, core.DefaultAccountID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "kapso: resolve account").
			WithTextCode(core.ChannelErrorConfiguration)
	}
	f.account = account

	f.registry = o.registry
	if f.registry == nil {
		f.registry = inbound.NewRegistry(inbound.WithLogger(f.componentLogger("kapso.inbound", o.logger)))
	}

	f.commands = Commands{
		SendText: command.NewSendTextCommand(f.relay, f.resolveAccount),
	}
	if o.handler != nil {
		f.commands.RouteInbound = command.NewRouteInboundCommand(o.handler)
	}
	f.queries = Queries{ResolveTarget: command.NewResolveTargetQuery()}

	core.Log(context.Background(), f.logger, "debug", "kapso channel initialized", map[string]any{
		"account_id": account.AccountID,
		"configured": account.Configured(),
		"enabled":    account.Enabled,
	})
	return f, nil
}

func (f *Facade) componentLogger(name string, fallback core.Logger) core.Logger {
	return core.ResolveLogger(name, f.provider, fallback)
}

func (f *Facade) resolveAccount(accountID string) (core.Account, error) {
	return f.plugin.ResolveAccount(f.cfg, accountID)
}

func (f *Facade) Config() core.Config {
	if f == nil {
		return core.Config{}
	}
	return f.cfg
}

func (f *Facade) Account() core.Account {
	if f == nil {
		return core.Account{}
	}
	return f.account
}

func (f *Facade) Plugin() *channel.Plugin {
	if f == nil {
		return nil
	}
	return f.plugin
}

func (f *Facade) Registry() *inbound.Registry {
	if f == nil {
		return nil
	}
	return f.registry
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

// RegisterWebhook mounts the account's webhook handler on the registry. A
// disabled account is not mounted.
func (f *Facade) RegisterWebhook() func() {
	if f == nil {
		return func() {}
	}
	if !f.account.Enabled {
		core.Log(context.Background(), f.logger, "info", "webhook not registered, account disabled", map[string]any{
			"account_id": f.account.AccountID,
		})
		return func() {}
	}
	return webhooks.RegisterWebhook(f.registry, f.account, f.router,
		webhooks.WithLogger(f.componentLogger("kapso.webhooks", f.logger)),
		webhooks.WithMetricsRecorder(f.metrics),
	)
}

// SendText delivers text to a target through the relay, chunked to the
// channel's text limit.
func (f *Facade) SendText(ctx context.Context, to string, text string) OutboundResult {
	if f == nil {
		return OutboundResult{Channel: core.ChannelID, Error: "kapso: facade is nil"}
	}
	return f.plugin.SendText(ctx, channel.SendTextRequest{
		To:        to,
		Text:      text,
		AccountID: f.account.AccountID,
		Config:    f.cfg,
	})
}

// Subscribe registers the facade's commands and queries with adapter and
// subscribes them on the go-command dispatcher. RouteInbound is only
// subscribed when an inbound handler was configured.
func (f *Facade) Subscribe(adapter *gocommand.RegistryAdapter) (gocommand.Subscriptions, error) {
	if f == nil {
		return nil, fmt.Errorf("kapso: facade is nil")
	}
	var subs gocommand.Subscriptions
	fail := func(err error) (gocommand.Subscriptions, error) {
		subs.Unsubscribe()
		return nil, err
	}

	sub, err := gocommand.RegisterAndSubscribe[command.SendTextMessage](adapter, f.commands.SendText)
	if err != nil {
		return fail(err)
	}
	subs = append(subs, sub)

	sub, err = gocommand.RegisterAndSubscribeQuery[command.ResolveTargetMessage, command.ResolvedTarget](adapter, f.queries.ResolveTarget)
	if err != nil {
		return fail(err)
	}
	subs = append(subs, sub)

	if f.commands.RouteInbound != nil {
		sub, err = gocommand.RegisterAndSubscribe[command.RouteInboundMessage](adapter, f.commands.RouteInbound)
		if err != nil {
			return fail(err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
