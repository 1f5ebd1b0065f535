package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/SscSPs/psbook/internal/apperrors"
)

// InvitationClient calls Clerk's backend API with the instance secret key as a bearer token.
type InvitationClient struct {
	baseURL     string
	redirectURL string
	httpClient  *http.Client
}

type createInvitationRequest struct {
	EmailAddress   string            `json:"email_address"`
	RedirectURL    string            `json:"redirect_url,omitempty"`
	PublicMetadata map[string]string `json:"public_metadata,omitempty"`
	Notify         bool              `json:"notify"`
}

// NewInvitationClient returns nil when secretKey is empty so callers can treat the
// feature as unconfigured.
func NewInvitationClient(ctx context.Context, baseURL, secretKey, redirectURL string) *InvitationClient {
	if secretKey == "" {
		return nil
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: secretKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = 10 * time.Second
	return &InvitationClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		redirectURL: redirectURL,
		httpClient:  httpClient,
	}
}

// SendInvitation asks Clerk to email an invitation to email.
func (c *InvitationClient) SendInvitation(ctx context.Context, email string, metadata map[string]string) error {
	if c == nil {
		return fmt.Errorf("%w: clerk secret key", apperrors.ErrConfigMissing)
	}

	payload, err := json.Marshal(createInvitationRequest{
		EmailAddress:   email,
		RedirectURL:    c.redirectURL,
		PublicMetadata: metadata,
		Notify:         true,
	})
	if err != nil {
		return fmt.Errorf("encode invitation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invitations", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build invitation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invitation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("invitation API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
