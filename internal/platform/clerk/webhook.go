// Package clerk talks to the Clerk identity provider: it verifies the Svix-signed webhooks
// Clerk delivers and calls its backend API to send invitations.
package clerk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"

	secretPrefix    = "whsec_"
	signatureScheme = "v1"

	// DefaultTolerance is how far a delivery's timestamp may be from now.
	DefaultTolerance = 5 * time.Minute

	EventUserCreated = "user.created"
)

var (
	ErrMissingHeaders   = errors.New("missing svix headers")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidTimestamp = errors.New("webhook timestamp outside tolerance")
	ErrInvalidSecret    = errors.New("invalid webhook secret")
)

// Verifier checks Svix webhook signatures.
type Verifier struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier decodes a "whsec_"-prefixed base64 secret. The prefix is optional.
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(secret), secretPrefix)
	if raw == "" {
		return nil, ErrInvalidSecret
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return &Verifier{key: key, tolerance: DefaultTolerance, now: time.Now}, nil
}

// WithClock replaces the time source. Intended for tests.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Sign returns the base64 signature for a delivery.
func (v *Verifier) Sign(id string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks the three svix headers against body. The signature header may hold several
// space-separated "v1,<sig>" entries; any one matching is enough.
func (v *Verifier) Verify(headers http.Header, body []byte) error {
	id := headers.Get(HeaderID)
	ts := headers.Get(HeaderTimestamp)
	sigs := headers.Get(HeaderSignature)
	if id == "" || ts == "" || sigs == "" {
		return ErrMissingHeaders
	}

	timestamp, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	sent := time.Unix(timestamp, 0)
	now := v.now()
	if sent.Before(now.Add(-v.tolerance)) || sent.After(now.Add(v.tolerance)) {
		return ErrInvalidTimestamp
	}

	expected := []byte(v.Sign(id, timestamp, body))
	for _, entry := range strings.Fields(sigs) {
		scheme, sig, ok := strings.Cut(entry, ",")
		if !ok || scheme != signatureScheme {
			continue
		}
		if hmac.Equal([]byte(sig), expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Event is the envelope of every Clerk webhook delivery.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserData is the subset of a Clerk user object the backend reads.
type UserData struct {
	ID                    string         `json:"id"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
}

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the address marked primary, falling back to the first one listed.
func (u UserData) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

// ParseEvent decodes the envelope.
func ParseEvent(body []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	return &evt, nil
}

// User decodes the event payload as a Clerk user.
func (e *Event) User() (*UserData, error) {
	var u UserData
	if err := json.Unmarshal(e.Data, &u); err != nil {
		return nil, fmt.Errorf("decode user payload: %w", err)
	}
	return &u, nil
}
