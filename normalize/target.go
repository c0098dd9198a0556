// Package normalize converts phone-number-like strings into E.164 targets and
// into the relay's WhatsApp identifier form.
package normalize

import (
	"net/http"
	"regexp"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-whatsapp-kapso/core"
)

const (
	TargetPrefix       = "whatsapp:"
	RelayDomain        = "@s.whatsapp.net"
	DefaultCountryCode = "1"

	minDigits = 7
	maxDigits = 15

	// numbers with this many digits or fewer and no "+" get DefaultCountryCode
	nationalMaxDigits = 10
)

var (
	nonDigits       = regexp.MustCompile(`\D`)
	relayIdentifier = regexp.MustCompile(`^(\+?\d+)@`)
	prefixPattern   = regexp.MustCompile(`(?i)^whatsapp:`)
)

// Target normalizes raw to E.164. The boolean is false when raw cannot be
// read as a phone number with 7 to 15 digits.
func Target(raw string) (string, bool) {
	normalized := StripPrefix(strings.TrimSpace(raw))
	if normalized == "" {
		return "", false
	}

	hasPlus := strings.HasPrefix(normalized, "+")
	digits := nonDigits.ReplaceAllString(normalized, "")
	if digits == "" {
		return "", false
	}

	if !hasPlus && len(digits) <= nationalMaxDigits {
		digits = DefaultCountryCode + digits
	}
	if len(digits) < minDigits || len(digits) > maxDigits {
		return "", false
	}
	return "+" + digits, true
}

// MessagingTarget normalizes an outbound target.
func MessagingTarget(raw string) (string, bool) {
	return Target(raw)
}

// LooksLikeTargetID is a permissive hint: any "whatsapp:" string or any value
// carrying 7 to 15 digits qualifies, so long numeric ids also match.
func LooksLikeTargetID(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	if prefixPattern.MatchString(trimmed) {
		return true
	}
	digits := nonDigits.ReplaceAllString(trimmed, "")
	return len(digits) >= minDigits && len(digits) <= maxDigits
}

// StripPrefix removes a leading, case-insensitive "whatsapp:" scheme.
func StripPrefix(raw string) string {
	if prefixPattern.MatchString(raw) {
		return strings.TrimSpace(raw[len(TargetPrefix):])
	}
	return raw
}

// ToRelayIdentifier renders a phone number as "<digits>@s.whatsapp.net".
func ToRelayIdentifier(phone string) (string, error) {
	normalized, ok := Target(phone)
	if !ok {
		return "", goerrors.New("normalize: invalid phone number", goerrors.CategoryBadInput).
			WithCode(http.StatusBadRequest).
			WithTextCode(core.ChannelErrorInvalidTarget).
			WithMetadata(map[string]any{"phone": phone})
	}
	return strings.TrimPrefix(normalized, "+") + RelayDomain, nil
}

// FromRelayIdentifier extracts and normalizes the number in a relay identifier.
// Identifier digits always include the country code, so no default is added.
func FromRelayIdentifier(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	match := relayIdentifier.FindStringSubmatch(id)
	if match == nil {
		return "", false
	}
	return Target("+" + strings.TrimPrefix(match[1], "+"))
}
