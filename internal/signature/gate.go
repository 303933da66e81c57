package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// HeaderName carries the hex HMAC-SHA256 of the raw request body.
const HeaderName = "X-Body-Signature"

var (
	ErrMissingSignature = errors.New("signature header missing")
	ErrMissingSecret    = errors.New("signing secret not configured")
	ErrMismatch         = errors.New("signature mismatch")
)

// Verdict is the outcome of checking a request signature.
type Verdict int

const (
	VerdictValid Verdict = iota
	VerdictUnsigned
	VerdictMismatch
)

// String returns the string representation of the verdict
func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictUnsigned:
		return "unsigned"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Decision tells the caller whether to serve the request.
type Decision struct {
	Verdict Verdict
	// Allowed is false only when the request must be rejected with 401.
	Allowed bool
	// Err explains any verdict other than VerdictValid.
	Err error
}

// Gate checks X-Body-Signature. Outside production it lets unsigned and
// mismatched requests through so local tooling works without a secret;
// in production both are rejected.
type Gate struct {
	secret     string
	production bool
}

// NewGate creates a gate for the given secret and environment.
func NewGate(secret string, production bool) *Gate {
	return &Gate{secret: secret, production: production}
}

// Production reports whether the strict policy is active.
func (g *Gate) Production() bool {
	return g.production
}

// Evaluate checks the header against the raw body.
func (g *Gate) Evaluate(body []byte, header string) Decision {
	header = strings.TrimSpace(header)

	switch {
	case header == "":
		return Decision{Verdict: VerdictUnsigned, Allowed: !g.production, Err: ErrMissingSignature}
	case g.secret == "":
		return Decision{Verdict: VerdictUnsigned, Allowed: !g.production, Err: ErrMissingSecret}
	}

	if !Verify(g.secret, body, header) {
		return Decision{Verdict: VerdictMismatch, Allowed: !g.production, Err: ErrMismatch}
	}
	return Decision{Verdict: VerdictValid, Allowed: true}
}

// Sign returns the lowercase hex HMAC-SHA256 of body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares a hex signature, optionally prefixed with "sha256=",
// against the HMAC of body in constant time.
func Verify(secret string, body []byte, signature string) bool {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(sig), "sha256=") {
		sig = sig[len("sha256="):]
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
