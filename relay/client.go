// Package relay posts outbound WhatsApp text messages to the remote-code relay.
//
// Send never returns an error: configuration problems, transport failures and
// non-2xx replies all come back as a failed core.SendResult. There is no retry.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/transport"
)

const (
	ErrRelayURLMissing      = "Remote-code URL not configured"
	ErrWebhookSecretMissing = "Webhook secret not configured"
)

type Poster interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, payload any) (transport.Response, error)
}

type Client struct {
	poster  Poster
	logger  core.Logger
	metrics core.MetricsRecorder
}

type Option func(*Client)

func WithPoster(poster Poster) Option {
	return func(c *Client) {
		if poster != nil {
			c.poster = poster
		}
	}
}

func WithHTTPClient(doer transport.HTTPDoer) Option {
	return func(c *Client) {
		c.poster = transport.NewRESTAdapter(doer)
	}
}

func WithLogger(logger core.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		poster:  transport.NewRESTAdapter(nil),
		metrics: core.NopMetricsRecorder{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.logger = core.ResolveLogger("kapso.relay", nil, c.logger)
	return c
}

type outboundPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type outboundReply struct {
	MessageID string `json:"messageId"`
	ID        string `json:"id"`
}

// OutboundURL joins the relay base URL with the outbound endpoint path.
func OutboundURL(relayURL string) string {
	return strings.TrimRight(strings.TrimSpace(relayURL), "/") + core.OutboundPath
}

func (c *Client) Send(ctx context.Context, to string, text string, account core.Account) core.SendResult {
	if c == nil {
		c = NewClient()
	}
	if strings.TrimSpace(account.RelayURL) == "" {
		return c.fail(ctx, account, to, ErrRelayURLMissing, "configuration")
	}
	if account.WebhookSecret == "" {
		return c.fail(ctx, account, to, ErrWebhookSecretMissing, "configuration")
	}

	startedAt := time.Now()
	res, err := c.poster.PostJSON(ctx, OutboundURL(account.RelayURL), map[string]string{
		core.WebhookSecretHeader: account.WebhookSecret,
	}, outboundPayload{To: to, Message: text})
	c.metrics.ObserveHistogram(ctx, "kapso.relay.send.duration_ms", float64(time.Since(startedAt).Milliseconds()), map[string]string{
		"account_id": account.AccountID,
	})
	if err != nil {
		return c.fail(ctx, account, to, errorMessage(err), "transport")
	}
	if !res.OK() {
		return c.fail(ctx, account, to, fmt.Sprintf("Remote-code error: %d %s", res.StatusCode, string(res.Body)), "status")
	}

	var reply outboundReply
	if len(res.Body) > 0 {
		if err := json.Unmarshal(res.Body, &reply); err != nil {
			core.Log(ctx, c.logger, "warn", "relay reply was not json", map[string]any{
				"account_id":  account.AccountID,
				"status_code": res.StatusCode,
			})
		}
	}
	messageID := reply.MessageID
	if messageID == "" {
		messageID = reply.ID
	}

	c.metrics.IncCounter(ctx, "kapso.relay.send.total", 1, map[string]string{
		"account_id": account.AccountID,
		"status":     "success",
	})
	core.Log(ctx, c.logger, "info", "relay message sent", map[string]any{
		"account_id": account.AccountID,
		"to":         to,
		"message_id": messageID,
	})
	return core.SendResult{Success: true, MessageID: messageID}
}

func (c *Client) fail(ctx context.Context, account core.Account, to string, message string, reason string) core.SendResult {
	c.metrics.IncCounter(ctx, "kapso.relay.send.total", 1, map[string]string{
		"account_id": account.AccountID,
		"status":     "failure",
		"reason":     reason,
	})
	core.Log(ctx, c.logger, "error", "relay send failed", map[string]any{
		"account_id": account.AccountID,
		"to":         to,
		"reason":     reason,
		"error":      message,
	})
	return core.SendResult{Success: false, Error: message}
}

func errorMessage(err error) string {
	if err == nil {
		return "Unknown error"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "Unknown error"
}
