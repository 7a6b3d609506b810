package venice

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signWebhook(payload []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + ":"))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"image.generated","id":"evt-1"}`)
	timestamp := "1756200000"
	secret := "whsec_test"

	signature := signWebhook(payload, timestamp, secret)

	ok, err := VerifyWebhookSignature(payload, signature, timestamp, secret)
	require.NoError(t, err)
	assert.True(t, ok, "a correctly signed payload must verify")

	// Uppercase hex is accepted.
	ok, err = VerifyWebhookSignature(payload, strings.ToUpper(signature), timestamp, secret)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWebhookSignature_Rejections(t *testing.T) {
	payload := []byte(`{"event":"image.generated"}`)
	timestamp := "1756200000"
	secret := "whsec_test"
	signature := signWebhook(payload, timestamp, secret)

	t.Run("tampered payload", func(t *testing.T) {
		ok, err := VerifyWebhookSignature([]byte(`{"event":"tampered"}`), signature, timestamp, secret)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong timestamp", func(t *testing.T) {
		ok, err := VerifyWebhookSignature(payload, signature, "1756200001", secret)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		ok, err := VerifyWebhookSignature(payload, signature, timestamp, "whsec_other")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("truncated signature", func(t *testing.T) {
		ok, err := VerifyWebhookSignature(payload, signature[:10], timestamp, secret)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVerifyWebhookSignature_InvalidInputs(t *testing.T) {
	payload := []byte(`{}`)

	_, err := VerifyWebhookSignature(payload, "sig", "ts", "")
	assert.ErrorAs(t, err, new(*InvalidInputError))

	_, err = VerifyWebhookSignature(payload, "", "ts", "secret")
	assert.ErrorAs(t, err, new(*InvalidInputError))

	_, err = VerifyWebhookSignature(payload, "sig", "", "secret")
	assert.ErrorAs(t, err, new(*InvalidInputError))
}

func TestWebhookHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("X-Venice-Signature", "deadbeef")
	h.Set("X-Venice-Timestamp", "1756200000")

	sig, ts := WebhookHeaders(h)
	assert.Equal(t, "deadbeef", sig)
	assert.Equal(t, "1756200000", ts)

	sig, ts = WebhookHeaders(http.Header{})
	assert.Empty(t, sig)
	assert.Empty(t, ts)
}
