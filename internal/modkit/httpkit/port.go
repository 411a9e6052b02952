// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	perrs "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
)

// signatureHeader carries the HMAC GitHub computes over the raw delivery body
const signatureHeader = "X-Hub-Signature-256"

// maxSignedBody caps how much body we buffer for the signature check
// bind enforces its own limit downstream, this one only bounds the buffer
const maxSignedBody = 1 << 20

// SignaturePort implements middleware.VerifierPort for GitHub webhook
// deliveries signed with a shared secret
type SignaturePort struct {
	secret []byte
}

// NewSignaturePort builds a SignaturePort from the shared webhook secret
func NewSignaturePort(secret string) *SignaturePort {
	return &SignaturePort{secret: []byte(secret)}
}

// Verify recomputes the body HMAC and compares it in constant time
// returns unauthorized when the header is missing, malformed, or does not match
// the body is restored afterwards so downstream decoding still works
func (p *SignaturePort) Verify(r *http.Request) error {
	header := strings.TrimSpace(r.Header.Get(signatureHeader))
	if header == "" {
		return perrs.Unauthorizedf("missing signature")
	}
	const prefix = "sha256="
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return perrs.Unauthorizedf("invalid signature")
	}
	want, err := hex.DecodeString(header[len(prefix):])
	if err != nil {
		return perrs.Unauthorizedf("invalid signature")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSignedBody+1))
	if err != nil {
		return perrs.InvalidArgf("unreadable request body")
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) > maxSignedBody {
		return perrs.InvalidArgf("request body too large")
	}

	mac := hmac.New(sha256.New, p.secret)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), want) {
		return perrs.Unauthorizedf("invalid signature")
	}
	return nil
}
