package venice

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

// Webhook header names, matched case-insensitively.
const (
	WebhookSignatureHeader = "x-venice-signature"
	WebhookTimestampHeader = "x-venice-timestamp"
)

// VerifyWebhookSignature checks whether a webhook request genuinely came
// from the vendor. The expected signature is the hex-encoded HMAC-SHA256 of
// "timestamp:payload" under the shared webhook secret; comparison is
// constant-time. It returns false for a well-formed but mismatched
// signature, and an error only for unusable inputs.
func VerifyWebhookSignature(payload []byte, signature, timestamp, secret string) (bool, error) {
	if secret == "" {
		return false, &InvalidInputError{Message: "webhook secret must not be empty"}
	}
	if signature == "" || timestamp == "" {
		return false, &InvalidInputError{Message: "signature and timestamp must not be empty"}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(":"))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	given := strings.ToLower(signature)
	if len(given) != len(expected) {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1, nil
}

// WebhookHeaders extracts the signature and timestamp from a webhook
// request's headers. Missing headers come back as empty strings.
func WebhookHeaders(h http.Header) (signature, timestamp string) {
	return h.Get(WebhookSignatureHeader), h.Get(WebhookTimestampHeader)
}
