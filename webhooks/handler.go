package webhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/normalize"
)

const DefaultMaxBodyBytes int64 = 1 << 20 // 1 MiB

const unauthorizedBody = "Unauthorized"

// Discard reasons reported in logs and metrics.
const (
	DiscardMissingMessage = "missing_message"
	DiscardInvalidSender  = "invalid_sender"
	DiscardEmptyText      = "empty_text"
)

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Handler struct {
	account      core.Account
	verifier     SecretVerifier
	router       core.MessageRouter
	logger       core.Logger
	metrics      core.MetricsRecorder
	maxBodyBytes int64
	requestID    func() string
}

type Option func(*Handler)

func WithLogger(logger core.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(h *Handler) {
		if recorder != nil {
			h.metrics = recorder
		}
	}
}

func WithMaxBodyBytes(limit int64) Option {
	return func(h *Handler) {
		if limit > 0 {
			h.maxBodyBytes = limit
		}
	}
}

func WithRequestIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		if fn != nil {
			h.requestID = fn
		}
	}
}

func WithVerifier(verifier SecretVerifier) Option {
	return func(h *Handler) {
		h.verifier = verifier
	}
}

// NewHandler builds the webhook handler for one resolved account. The
// verifier defaults to the account's webhook secret.
func NewHandler(account core.Account, router core.MessageRouter, opts ...Option) *Handler {
	h := &Handler{
		account:      account,
		verifier:     NewSecretVerifier(account.WebhookSecret),
		router:       router,
		metrics:      core.NopMetricsRecorder{},
		maxBodyBytes: DefaultMaxBodyBytes,
		requestID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(h)
	}
	h.logger = core.ResolveLogger("kapso.webhooks", nil, h.logger)
	return h
}

type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(p []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(p)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	w := &trackingWriter{ResponseWriter: rw}
	ctx := r.Context()
	fields := map[string]any{
		"request_id": h.requestID(),
		"account_id": h.account.AccountID,
		"path":       r.URL.Path,
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.count(ctx, "panic")
			core.Log(ctx, h.logger, "error", "webhook handler panicked", withField(fields, "panic", fmt.Sprint(rec)))
			if !w.wrote {
				writeJSON(w, http.StatusOK, response{Success: false, Error: fmt.Sprint(rec)})
			}
		}
	}()

	if err := h.verifier.Verify(r); err != nil {
		h.count(ctx, "unauthorized")
		core.Log(ctx, h.logger, "warn", "webhook rejected", withField(fields, "error", err.Error()))
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: unauthorizedBody})
		return
	}

	event, err := h.decode(w, r)
	if err != nil {
		h.count(ctx, "parse_error")
		core.Log(ctx, h.logger, "error", "webhook body could not be parsed", withField(fields, "error", core.MapError(err).Error()))
		writeJSON(w, http.StatusOK, response{Success: false, Error: rootCause(err)})
		return
	}

	fields["event"] = event.EventType
	if event.EventType != core.EventMessageReceived {
		h.count(ctx, "ignored")
		core.Log(ctx, h.logger, "debug", "webhook event ignored", fields)
		writeJSON(w, http.StatusOK, response{Success: true})
		return
	}

	h.process(ctx, event, fields)
	writeJSON(w, http.StatusOK, response{Success: true})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (core.InboundEvent, error) {
	var event core.InboundEvent
	if r.Body == nil {
		return event, badPayload(nil, "webhooks: request body is empty")
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return event, badPayload(err, "webhooks: read request body")
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		return event, badPayload(err, "webhooks: invalid json body")
	}
	event.EventType = strings.TrimSpace(r.Header.Get(core.WebhookEventHeader))
	return event, nil
}

func (h *Handler) process(ctx context.Context, event core.InboundEvent, fields map[string]any) {
	msg, reason := BuildInboundMessage(h.account.AccountID, event)
	if reason != "" {
		h.count(ctx, "discarded")
		core.Log(ctx, h.logger, "warn", "webhook message discarded", withField(fields, "reason", reason))
		return
	}
	fields = withField(fields, "message_id", msg.MessageID)
	fields["from"] = msg.From

	if h.router == nil {
		h.count(ctx, "unrouted")
		core.Log(ctx, h.logger, "warn", "no message router configured", fields)
		return
	}
	if err := h.router.Route(ctx, msg); err != nil {
		h.count(ctx, "route_error")
		core.Log(ctx, h.logger, "error", "message routing failed", withField(fields, "error", err.Error()))
		return
	}
	h.count(ctx, "routed")
	core.Log(ctx, h.logger, "info", "webhook message routed", fields)
}

// BuildInboundMessage validates a received-message event and converts it
// into the router's message form. A non-empty reason means the message is
// to be discarded.
func BuildInboundMessage(accountID string, event core.InboundEvent) (core.InboundMessage, string) {
	data := event.Message
	if data == nil {
		return core.InboundMessage{}, DiscardMissingMessage
	}
	from, ok := normalize.Target(data.From)
	if !ok {
		return core.InboundMessage{}, DiscardInvalidSender
	}
	if data.Text == nil || strings.TrimSpace(data.Text.Body) == "" {
		return core.InboundMessage{}, DiscardEmptyText
	}
	msg := core.InboundMessage{
		AccountID: accountID,
		MessageID: data.ID,
		From:      from,
		Text:      data.Text.Body,
		Type:      data.Type,
		Timestamp: parseTimestamp(data.Timestamp),
	}
	if data.Context != nil {
		msg.ReplyTo = data.Context.ID
	}
	return msg, ""
}

// parseTimestamp reads unix seconds; anything else yields the zero time.
func parseTimestamp(raw string) time.Time {
	seconds, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}

func (h *Handler) count(ctx context.Context, outcome string) {
	h.metrics.IncCounter(ctx, "kapso.webhook.requests.total", 1, map[string]string{
		"account_id": h.account.AccountID,
		"outcome":    outcome,
	})
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func withField(fields map[string]any, key string, value any) map[string]any {
	copied := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		copied[k] = v
	}
	copied[key] = value
	return copied
}

// rootCause returns the innermost error text for the response body.
func rootCause(err error) string {
	type unwrapper interface{ Unwrap() error }
	for {
		inner, ok := err.(unwrapper)
		if !ok || inner.Unwrap() == nil {
			return err.Error()
		}
		err = inner.Unwrap()
	}
}
