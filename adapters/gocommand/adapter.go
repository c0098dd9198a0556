// Package gocommand binds kapso messages to the go-command registry and
// dispatcher.
package gocommand

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

// ValidateMessageContract enforces the Type() contract plus Validate() when
// the message implements it.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return adapterError("gocommand: message must implement Type() string", goerrors.CategoryBadInput)
	}
	if strings.TrimSpace(m.Type()) == "" {
		return adapterError("gocommand: message type is required", goerrors.CategoryBadInput)
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) Register(handler any) error {
	if a == nil || a.registry == nil {
		return errRegistryMissing()
	}
	return a.registry.RegisterCommand(handler)
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return errRegistryMissing()
	}
	return a.registry.Initialize()
}

// Subscriptions collects dispatcher subscriptions so a process can drop all
// of its handlers at shutdown.
type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, sub := range s {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, errRegistryMissing()
	}
	if cmd == nil {
		return nil, adapterError("gocommand: command is required", goerrors.CategoryBadInput)
	}
	subscription := commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.Register(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, errRegistryMissing()
	}
	if qry == nil {
		return nil, adapterError("gocommand: query is required", goerrors.CategoryBadInput)
	}
	subscription := commanddispatcher.SubscribeQuery(qry, runnerOpts...)
	if err := adapter.Register(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func errRegistryMissing() error {
	return adapterError("gocommand: registry is not configured", goerrors.CategoryInternal)
}

func adapterError(message string, category goerrors.Category) error {
	code := http.StatusInternalServerError
	textCode := core.ChannelErrorInternal
	if category == goerrors.CategoryBadInput {
		code = http.StatusBadRequest
		textCode = core.ChannelErrorBadInput
	}
	return goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
}
