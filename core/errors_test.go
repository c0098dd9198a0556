package core

import (
	stderrors "errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestMapError_AssignsStableCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
		code     int
	}{
		{"unauthorized", stderrors.New("webhooks: unauthorized"), goerrors.CategoryAuth, ChannelErrorUnauthorized, http.StatusUnauthorized},
		{"configuration", stderrors.New("Remote-code URL not configured"), goerrors.CategoryBadInput, ChannelErrorConfiguration, http.StatusBadRequest},
		{"route conflict", stderrors.New("inbound: path already registered"), goerrors.CategoryConflict, ChannelErrorRouteConflict, http.StatusConflict},
		{"invalid input", stderrors.New("normalize: invalid phone"), goerrors.CategoryBadInput, ChannelErrorBadInput, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			if mapped.Category != tc.category {
				t.Fatalf("expected %q category, got %q", tc.category, mapped.Category)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected %q text code, got %q", tc.textCode, mapped.TextCode)
			}
			if mapped.Code != tc.code {
				t.Fatalf("expected %d code, got %d", tc.code, mapped.Code)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if MapError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestMapError_KeepsExistingEnvelope(t *testing.T) {
	source := goerrors.New("relay down", goerrors.CategoryExternal).WithTextCode("CUSTOM")
	mapped := MapError(source)
	if mapped.TextCode != "CUSTOM" {
		t.Fatalf("expected text code preserved, got %q", mapped.TextCode)
	}
	if mapped.Code != http.StatusBadGateway {
		t.Fatalf("expected external errors to default to 502, got %d", mapped.Code)
	}
}

func TestMapError_UnknownFallsBackToInternalEnvelope(t *testing.T) {
	mapped := MapError(stderrors.New("something odd"))
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.Code == 0 || mapped.TextCode == "" {
		t.Fatalf("expected code and text code filled, got %d %q", mapped.Code, mapped.TextCode)
	}
}
