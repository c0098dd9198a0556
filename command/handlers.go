package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/normalize"
)

// Sender delivers one text message through the relay.
type Sender interface {
	Send(ctx context.Context, to string, text string, account core.Account) core.SendResult
}

// AccountSource returns the resolved account for an id; an empty id means
// the default account.
type AccountSource func(accountID string) (core.Account, error)

type RouteInboundCommand struct {
	router core.MessageRouter
}

func NewRouteInboundCommand(router core.MessageRouter) *RouteInboundCommand {
	return &RouteInboundCommand{router: router}
}

func (c *RouteInboundCommand) Execute(ctx context.Context, msg RouteInboundMessage) error {
	if c == nil || c.router == nil {
		return commandDependencyError("command: inbound router is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.router.Route(ctx, msg.Message)
}

type SendTextCommand struct {
	sender   Sender
	accounts AccountSource
}

func NewSendTextCommand(sender Sender, accounts AccountSource) *SendTextCommand {
	return &SendTextCommand{sender: sender, accounts: accounts}
}

// Execute normalizes the target and sends the text. The relay result is
// stored in the context collector whether or not the send succeeded.
func (c *SendTextCommand) Execute(ctx context.Context, msg SendTextMessage) error {
	if c == nil || c.sender == nil || c.accounts == nil {
		return commandDependencyError("command: send text dependencies are required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	to, ok := normalize.MessagingTarget(msg.To)
	if !ok {
		return commandInvalidTargetError(msg.To)
	}
	account, err := c.accounts(msg.AccountID)
	if err != nil {
		return err
	}
	result := c.sender.Send(ctx, to, msg.Text, account)
	storeResult(ctx, result)
	if !result.Success {
		return commandSendError(result, account.AccountID)
	}
	return nil
}

type ResolveTargetQuery struct{}

func NewResolveTargetQuery() *ResolveTargetQuery {
	return &ResolveTargetQuery{}
}

func (*ResolveTargetQuery) Query(_ context.Context, msg ResolveTargetMessage) (ResolvedTarget, error) {
	if err := msg.Validate(); err != nil {
		return ResolvedTarget{}, err
	}
	out := ResolvedTarget{
		Raw:             msg.Raw,
		LooksLikeTarget: normalize.LooksLikeTargetID(msg.Raw),
	}
	e164, ok := normalize.Target(msg.Raw)
	if !ok {
		return out, nil
	}
	identifier, err := normalize.ToRelayIdentifier(e164)
	if err != nil {
		return out, err
	}
	out.E164 = e164
	out.RelayIdentifier = identifier
	out.Valid = true
	return out, nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
