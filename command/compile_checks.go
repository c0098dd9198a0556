package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

var (
	_ gocmd.Commander[RouteInboundMessage]                = (*RouteInboundCommand)(nil)
	_ gocmd.Commander[SendTextMessage]                    = (*SendTextCommand)(nil)
	_ gocmd.Querier[ResolveTargetMessage, ResolvedTarget] = (*ResolveTargetQuery)(nil)
	_ core.MessageRouter                                  = DispatchRouter{}
)
