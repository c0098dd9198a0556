package gologger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestResolveDeterministicFallback(t *testing.T) {
	loggerOnly := &capturingLogger{id: "logger"}
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}

	var resolvedProvider glog.LoggerProvider
	_, resolved := Resolve("kapso", provider, loggerOnly)
	got := resolved.(*capturingLogger)
	if got.id != "provider" {
		t.Fatalf("expected provider logger precedence, got %q", got.id)
	}

	resolvedProvider, resolved = Resolve("kapso", nil, loggerOnly)
	got = resolved.(*capturingLogger)
	if got.id != "logger" {
		t.Fatalf("expected direct logger when provider is nil, got %q", got.id)
	}
	if resolvedProvider == nil {
		t.Fatalf("expected provider wrapper from logger")
	}

	_, resolved = Resolve("kapso", nil, nil)
	if resolved == nil {
		t.Fatalf("expected nop logger fallback")
	}
}

func newJSONLogger(buf *bytes.Buffer) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var out map[string]any
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	return out
}

func TestSlogLogger_WritesArgsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf).WithFields(map[string]any{"account_id": "default"})
	logger.Warn("webhook rejected", "path", "/api/whatsapp/kapso/inbound")

	line := decodeLine(t, &buf)
	if line["msg"] != "webhook rejected" || line["level"] != "WARN" {
		t.Fatalf("unexpected line %v", line)
	}
	if line["account_id"] != "default" || line["path"] != "/api/whatsapp/kapso/inbound" {
		t.Fatalf("expected fields and args, got %v", line)
	}
}

func TestProvider_NamesChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	provider := NewProvider(newJSONLogger(&buf))
	provider.GetLogger("kapso.relay").WithContext(context.Background()).Info("sent")

	line := decodeLine(t, &buf)
	if line["logger"] != "kapso.relay" {
		t.Fatalf("expected logger name attribute, got %v", line)
	}
}

func TestFromLevel_ReturnsUsableLogger(t *testing.T) {
	logger := FromLevel("ERROR")
	if logger == nil {
		t.Fatalf("expected logger")
	}
	logger.Debug("suppressed")
}

var (
	_ glog.Logger         = (*capturingLogger)(nil)
	_ glog.LoggerProvider = (*capturingProvider)(nil)
)

type capturingProvider struct {
	logger *capturingLogger
}

func (p *capturingProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type capturingLogger struct {
	id string
}

func (l *capturingLogger) Trace(string, ...any) {}
func (l *capturingLogger) Debug(string, ...any) {}
func (l *capturingLogger) Info(string, ...any)  {}
func (l *capturingLogger) Warn(string, ...any)  {}
func (l *capturingLogger) Error(string, ...any) {}
func (l *capturingLogger) Fatal(string, ...any) {}

func (l *capturingLogger) WithContext(context.Context) glog.Logger {
	return l
}
