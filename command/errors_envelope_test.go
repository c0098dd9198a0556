package command

import (
	"context"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

func TestRouteInboundMessage_ValidateReturnsRichError(t *testing.T) {
	err := (RouteInboundMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ChannelErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ChannelErrorBadInput, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
}

func TestRouteInboundCommand_NilRouterReturnsRichError(t *testing.T) {
	var cmd *RouteInboundCommand
	err := cmd.Execute(context.Background(), RouteInboundMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}

func TestSendTextCommand_InvalidTargetReturnsRichError(t *testing.T) {
	cmd := NewSendTextCommand(&stubSender{}, staticAccounts(core.Account{}))
	err := cmd.Execute(context.Background(), SendTextMessage{To: "12", Text: "hi"})

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != core.ChannelErrorInvalidTarget {
		t.Fatalf("expected %q text code, got %q", core.ChannelErrorInvalidTarget, rich.TextCode)
	}
}
