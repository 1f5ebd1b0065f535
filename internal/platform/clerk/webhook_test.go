package clerk

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("super-secret-signing-key"))

func signedHeaders(t *testing.T, v *Verifier, id string, ts time.Time, body []byte) http.Header {
	t.Helper()
	h := http.Header{}
	h.Set(HeaderID, id)
	h.Set(HeaderTimestamp, strconv.FormatInt(ts.Unix(), 10))
	h.Set(HeaderSignature, "v1,"+v.Sign(id, ts.Unix(), body))
	return h
}

func TestVerifier(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	body := []byte(`{"type":"user.created","data":{}}`)

	v, err := NewVerifier(testSecret)
	require.NoError(t, err)
	v.WithClock(func() time.Time { return now })

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, v.Verify(signedHeaders(t, v, "msg_1", now, body), body))
	})

	t.Run("one of several signatures matches", func(t *testing.T) {
		h := signedHeaders(t, v, "msg_1", now, body)
		h.Set(HeaderSignature, "v1,bm9wZQ== v1a,ignored "+h.Get(HeaderSignature))
		assert.NoError(t, v.Verify(h, body))
	})

	t.Run("tampered body", func(t *testing.T) {
		h := signedHeaders(t, v, "msg_1", now, body)
		assert.ErrorIs(t, v.Verify(h, []byte(`{"type":"user.deleted"}`)), ErrInvalidSignature)
	})

	t.Run("missing header", func(t *testing.T) {
		h := signedHeaders(t, v, "msg_1", now, body)
		h.Del(HeaderID)
		assert.ErrorIs(t, v.Verify(h, body), ErrMissingHeaders)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		h := signedHeaders(t, v, "msg_1", now.Add(-6*time.Minute), body)
		assert.ErrorIs(t, v.Verify(h, body), ErrInvalidTimestamp)
	})

	t.Run("future timestamp inside tolerance", func(t *testing.T) {
		h := signedHeaders(t, v, "msg_1", now.Add(4*time.Minute), body)
		assert.NoError(t, v.Verify(h, body))
	})

	t.Run("signature from another secret", func(t *testing.T) {
		other, err := NewVerifier("whsec_" + base64.StdEncoding.EncodeToString([]byte("other")))
		require.NoError(t, err)
		h := signedHeaders(t, other, "msg_1", now, body)
		assert.ErrorIs(t, v.Verify(h, body), ErrInvalidSignature)
	})
}

func TestNewVerifier_BadSecret(t *testing.T) {
	_, err := NewVerifier("")
	assert.ErrorIs(t, err, ErrInvalidSecret)

	_, err = NewVerifier("whsec_%%%not-base64")
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestUserData_PrimaryEmail(t *testing.T) {
	evt, err := ParseEvent([]byte(`{
		"type": "user.created",
		"data": {
			"id": "user_123",
			"primary_email_address_id": "idn_2",
			"email_addresses": [
				{"id": "idn_1", "email_address": "old@example.com"},
				{"id": "idn_2", "email_address": "Asha@Example.com"}
			]
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, EventUserCreated, evt.Type)

	user, err := evt.User()
	require.NoError(t, err)
	assert.Equal(t, "user_123", user.ID)
	assert.Equal(t, "Asha@Example.com", user.PrimaryEmail())

	assert.Equal(t, "first@example.com", UserData{
		PrimaryEmailAddressID: "missing",
		EmailAddresses:        []EmailAddress{{ID: "a", EmailAddress: "first@example.com"}},
	}.PrimaryEmail())
	assert.Empty(t, UserData{}.PrimaryEmail())
}
