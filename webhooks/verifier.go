package webhooks

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/goliatone/go-whatsapp-kapso/core"
)

// SecretVerifier accepts a request only when its secret header equals the
// configured secret byte for byte.
type SecretVerifier struct {
	Header string
	Secret string
}

func NewSecretVerifier(secret string) SecretVerifier {
	return SecretVerifier{Header: core.WebhookSecretHeader, Secret: secret}
}

func (v SecretVerifier) Verify(req *http.Request) error {
	header := strings.TrimSpace(v.Header)
	if header == "" {
		header = core.WebhookSecretHeader
	}
	if v.Secret == "" {
		return unauthorized("webhooks: unauthorized, secret not configured", map[string]any{"header": header})
	}
	if req == nil {
		return unauthorized("webhooks: unauthorized, request is nil", nil)
	}
	actual := req.Header.Get(header)
	if actual == "" {
		return unauthorized("webhooks: unauthorized, secret header missing", map[string]any{"header": header})
	}
	if subtle.ConstantTimeCompare([]byte(actual), []byte(v.Secret)) != 1 {
		return unauthorized("webhooks: unauthorized, secret mismatch", map[string]any{"header": header})
	}
	return nil
}
