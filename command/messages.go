package command

import (
	"strings"

	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/normalize"
)

const (
	TypeRouteInbound  = "kapso.command.inbound.route"
	TypeSendText      = "kapso.command.outbound.send_text"
	TypeResolveTarget = "kapso.query.target.resolve"
)

// RouteInboundMessage carries a validated webhook message to the host's
// ingestion handler.
type RouteInboundMessage struct {
	Message core.InboundMessage
}

func (RouteInboundMessage) Type() string { return TypeRouteInbound }

func (m RouteInboundMessage) Validate() error {
	if _, ok := normalize.Target(m.Message.From); !ok {
		return commandValidationError("from", "sender must be a valid phone number")
	}
	if strings.TrimSpace(m.Message.Text) == "" {
		return commandValidationError("text", "text is required")
	}
	return nil
}

type SendTextMessage struct {
	AccountID string
	To        string
	Text      string
}

func (SendTextMessage) Type() string { return TypeSendText }

func (m SendTextMessage) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return commandValidationError("to", "target is required")
	}
	if m.Text == "" {
		return commandValidationError("text", "text is required")
	}
	return nil
}

type ResolveTargetMessage struct {
	Raw string
}

func (ResolveTargetMessage) Type() string { return TypeResolveTarget }

func (m ResolveTargetMessage) Validate() error {
	if strings.TrimSpace(m.Raw) == "" {
		return commandValidationError("raw", "target is required")
	}
	return nil
}

// ResolvedTarget is the normalized form of a raw target in both the E.164
// and relay identifier shapes.
type ResolvedTarget struct {
	Raw             string `json:"raw"`
	E164            string `json:"e164,omitempty"`
	RelayIdentifier string `json:"relayIdentifier,omitempty"`
	LooksLikeTarget bool   `json:"looksLikeTarget"`
	Valid           bool   `json:"valid"`
}
