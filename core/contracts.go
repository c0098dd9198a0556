package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

const (
	ChannelID        = "whatsapp-kapso"
	DefaultAccountID = "default"

	DefaultWebhookPath  = "/api/whatsapp/kapso/inbound"
	OutboundPath        = "/api/whatsapp/kapso/outbound"
	WebhookSecretHeader = "X-Webhook-Secret"
	WebhookEventHeader  = "X-Webhook-Event"

	EventMessageReceived = "whatsapp.message.received"
)

type DMPolicy string

const (
	DMPolicyPairing   DMPolicy = "pairing"
	DMPolicyAllowlist DMPolicy = "allowlist"
	DMPolicyOpen      DMPolicy = "open"
	DMPolicyDisabled  DMPolicy = "disabled"
)

// Account is the resolved, immutable view of one configured relay identity.
// Config keeps the file-level values as written, before environment overrides.
type Account struct {
	AccountID     string
	Name          string
	Enabled       bool
	RelayURL      string
	WebhookSecret string
	WebhookPath   string
	DMPolicy      DMPolicy
	AllowFrom     []string
	Config        AccountConfig
}

func (a Account) Configured() bool {
	return a.RelayURL != "" && a.WebhookSecret != ""
}

type InboundText struct {
	Body string `json:"body"`
}

type InboundContext struct {
	ID   string `json:"id"`
	From string `json:"from"`
}

type InboundMessageData struct {
	ID        string          `json:"id"`
	From      string          `json:"from"`
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Text      *InboundText    `json:"text,omitempty"`
	Context   *InboundContext `json:"context,omitempty"`
}

// InboundEvent is the webhook body posted by the relay. EventType is filled
// from the event header, not the body.
type InboundEvent struct {
	EventType     string              `json:"-"`
	Message       *InboundMessageData `json:"message"`
	PhoneNumberID string              `json:"phone_number_id,omitempty"`
}

// InboundMessage is a validated text message ready for the host router.
type InboundMessage struct {
	AccountID string
	MessageID string
	From      string
	Text      string
	Type      string
	Timestamp time.Time
	ReplyTo   string
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// MessageRouter is the host message-ingestion boundary.
type MessageRouter interface {
	Route(ctx context.Context, msg InboundMessage) error
}

type MessageRouterFunc func(ctx context.Context, msg InboundMessage) error

func (f MessageRouterFunc) Route(ctx context.Context, msg InboundMessage) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
