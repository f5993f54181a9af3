// Package signature verifies webhook payloads with a keyed HMAC over the
// raw request body. Callers must capture the body bytes before any JSON
// decode; re-serializing the payload invalidates the signature.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"catalog-connect-layer/internal/domain"
)

// Encoding is the text encoding a platform uses for its signature header.
type Encoding int

const (
	EncodingBase64 Encoding = iota
	EncodingHex
)

// Verifier computes HMAC-SHA256 over a raw body and compares it in constant
// time to the caller-supplied signature header value.
type Verifier struct {
	secret   string
	encoding Encoding
}

// New creates a verifier bound to one platform's webhook secret.
func New(secret string, encoding Encoding) *Verifier {
	return &Verifier{secret: secret, encoding: encoding}
}

// Verify checks signature against the HMAC of body. The header value is
// compared byte-for-byte, without trimming or re-encoding. An empty secret
// fails closed with domain.ErrSignatureUnconfigured.
func (v *Verifier) Verify(body []byte, signature string) error {
	if v.secret == "" {
		return domain.ErrSignatureUnconfigured
	}
	if signature == "" {
		return fmt.Errorf("%w: signature header missing", domain.ErrSignatureInvalid)
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	digest := mac.Sum(nil)

	var expected string
	switch v.encoding {
	case EncodingHex:
		expected = hex.EncodeToString(digest)
	default:
		expected = base64.StdEncoding.EncodeToString(digest)
	}

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrSignatureInvalid
	}
	return nil
}

// Sign returns the encoded HMAC of body under the verifier's secret. Used by
// tests and by tooling that replays captured webhooks.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	digest := mac.Sum(nil)
	if v.encoding == EncodingHex {
		return hex.EncodeToString(digest)
	}
	return base64.StdEncoding.EncodeToString(digest)
}
