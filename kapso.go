// Package kapso wires the WhatsApp channel adapter for the Kapso relay: a
// resolved account, the webhook route registry, the outbound relay client and
// the go-command handlers hosts subscribe to.
package kapso

import (
	"github.com/goliatone/go-whatsapp-kapso/channel"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

const ChannelID = core.ChannelID

type Config = core.Config

type AccountConfig = core.AccountConfig

type Account = core.Account

type InboundEvent = core.InboundEvent

type InboundMessage = core.InboundMessage

type SendResult = core.SendResult

type MessageRouter = core.MessageRouter

type MessageRouterFunc = core.MessageRouterFunc

type Logger = core.Logger

type LoggerProvider = core.LoggerProvider

type MetricsRecorder = core.MetricsRecorder

type OutboundResult = channel.OutboundResult

func DefaultConfig() Config {
	return core.DefaultConfig()
}
