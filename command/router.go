package command

import (
	"context"

	"github.com/goliatone/go-whatsapp-kapso/adapters/gocommand"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

// DispatchRouter is a core.MessageRouter that publishes each inbound message
// as a RouteInboundMessage on the go-command dispatcher. Hosts subscribe a
// RouteInboundCommand (or any Commander[RouteInboundMessage]) to receive them.
type DispatchRouter struct{}

func NewDispatchRouter() DispatchRouter {
	return DispatchRouter{}
}

func (DispatchRouter) Route(ctx context.Context, msg core.InboundMessage) error {
	message := RouteInboundMessage{Message: msg}
	if err := gocommand.ValidateMessageContract(message); err != nil {
		return err
	}
	return gocommand.Dispatch(ctx, message)
}
