package normalize

import (
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

func TestTarget(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "e164", raw: "+14155551234", want: "+14155551234", ok: true},
		{name: "formatted us", raw: "(415) 555-1234", want: "+14155551234", ok: true},
		{name: "national gets default country code", raw: "4155551234", want: "+14155551234", ok: true},
		{name: "eleven digits treated as international", raw: "44 20 7123 4567", want: "+442071234567", ok: true},
		{name: "prefix stripped", raw: "whatsapp:+442071234567", want: "+442071234567", ok: true},
		{name: "prefix case insensitive", raw: "  WhatsApp: +44 20 7123 4567 ", want: "+442071234567", ok: true},
		{name: "short with plus", raw: "+1234567", want: "+1234567", ok: true},
		{name: "six digits gets country code", raw: "123456", want: "+1123456", ok: true},
		{name: "too short with plus", raw: "+123456", ok: false},
		{name: "too long", raw: "+1234567890123456", ok: false},
		{name: "empty", raw: "   ", ok: false},
		{name: "prefix only", raw: "whatsapp:", ok: false},
		{name: "no digits", raw: "hello", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Target(tc.raw)
			if ok != tc.ok {
				t.Fatalf("Target(%q) ok=%v, want %v", tc.raw, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("Target(%q)=%q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestTarget_CountryCodeRuleByLength(t *testing.T) {
	for length := minDigits; length <= maxDigits; length++ {
		digits := strings.Repeat("7", length)
		got, ok := Target(digits)
		if length <= nationalMaxDigits {
			if !ok || got != "+1"+digits {
				t.Fatalf("length %d: expected +1 prefix, got %q ok=%v", length, got, ok)
			}
			continue
		}
		if !ok || got != "+"+digits {
			t.Fatalf("length %d: expected bare + prefix, got %q ok=%v", length, got, ok)
		}
	}
}

func TestTarget_RejectsDigitCountsOutsideRange(t *testing.T) {
	for _, raw := range []string{"+1", "+12345", "+123456", "+1234567890123456", "+12345678901234567890"} {
		if got, ok := Target(raw); ok {
			t.Fatalf("expected %q to be invalid, got %q", raw, got)
		}
	}
}

func TestLooksLikeTargetID(t *testing.T) {
	cases := map[string]bool{
		"whatsapp:anything": true,
		"WHATSAPP:x":        true,
		"+1 (415) 555-1234": true,
		"1234567":           true,
		"order 4155551234":  true,
		"123456":            false,
		"1234567890123456":  false,
		"":                  false,
		"alice":             false,
	}
	for raw, want := range cases {
		if got := LooksLikeTargetID(raw); got != want {
			t.Fatalf("LooksLikeTargetID(%q)=%v, want %v", raw, got, want)
		}
	}
}

func TestToRelayIdentifier(t *testing.T) {
	id, err := ToRelayIdentifier("+14155551234")
	if err != nil {
		t.Fatalf("to relay identifier: %v", err)
	}
	if id != "14155551234@s.whatsapp.net" {
		t.Fatalf("unexpected identifier %q", id)
	}
}

func TestToRelayIdentifier_InvalidReturnsRichError(t *testing.T) {
	_, err := ToRelayIdentifier("abc")
	if err == nil {
		t.Fatalf("expected invalid phone error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad_input category, got %q", rich.Category)
	}
	if rich.TextCode != core.ChannelErrorInvalidTarget {
		t.Fatalf("expected %q text code, got %q", core.ChannelErrorInvalidTarget, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
}

func TestFromRelayIdentifier(t *testing.T) {
	got, ok := FromRelayIdentifier("442071234567@s.whatsapp.net")
	if !ok || got != "+442071234567" {
		t.Fatalf("unexpected result %q ok=%v", got, ok)
	}
	if _, ok := FromRelayIdentifier("not-an-id"); ok {
		t.Fatalf("expected missing domain to be invalid")
	}
	if _, ok := FromRelayIdentifier(""); ok {
		t.Fatalf("expected empty identifier to be invalid")
	}
}

func TestRelayIdentifierRoundTrip(t *testing.T) {
	inputs := []string{
		"4155551234",
		"+1 415 555 1234",
		"whatsapp:+442071234567",
		"+1234567",
		"123456",
		"+123456789012345",
		"0044 20 7123 4567",
	}
	for _, raw := range inputs {
		normalized, ok := Target(raw)
		if !ok {
			t.Fatalf("expected %q to normalize", raw)
		}
		id, err := ToRelayIdentifier(normalized)
		if err != nil {
			t.Fatalf("to relay identifier %q: %v", normalized, err)
		}
		back, ok := FromRelayIdentifier(id)
		if !ok || back != normalized {
			t.Fatalf("round trip for %q: got %q ok=%v, want %q", raw, back, ok, normalized)
		}
	}
}
