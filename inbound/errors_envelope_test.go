package inbound

import (
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

func TestTryRegister_DuplicateReturnsConflictEnvelope(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.TryRegister("/hook", http.NotFoundHandler()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := registry.TryRegister("/hook", http.NotFoundHandler())
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryConflict {
		t.Fatalf("expected conflict category, got %q", rich.Category)
	}
	if rich.TextCode != core.ChannelErrorRouteConflict {
		t.Fatalf("expected %q text code, got %q", core.ChannelErrorRouteConflict, rich.TextCode)
	}
	if rich.Code != http.StatusConflict {
		t.Fatalf("expected %d code, got %d", http.StatusConflict, rich.Code)
	}
}

func TestTryRegister_NilHandlerReturnsBadInput(t *testing.T) {
	_, err := NewRegistry().TryRegister("/hook", nil)
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput || rich.Code != http.StatusBadRequest {
		t.Fatalf("expected bad input 400, got %q %d", rich.Category, rich.Code)
	}
}

func TestTryRegister_NilRegistryReturnsInternal(t *testing.T) {
	var registry *Registry
	_, err := registry.TryRegister("/hook", http.NotFoundHandler())
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal || rich.TextCode != core.ChannelErrorInternal {
		t.Fatalf("expected internal envelope, got %q %q", rich.Category, rich.TextCode)
	}
}
