package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/handlers"
	"github.com/SscSPs/psbook/internal/platform/clerk"
)

type MockIdentityLinker struct {
	mock.Mock
}

func (m *MockIdentityLinker) LinkExternalIdentity(ctx context.Context, email, externalID string) (domain.LinkOutcome, error) {
	args := m.Called(ctx, email, externalID)
	return args.Get(0).(domain.LinkOutcome), args.Error(1)
}

var webhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("webhook-test-key"))

const userCreatedBody = `{"type":"user.created","data":{"id":"user_123","primary_email_address_id":"idn_2","email_addresses":[{"id":"idn_1","email_address":"old@example.com"},{"id":"idn_2","email_address":"ravi@example.com"}]}}`

func newWebhookRouter(secret string, linker *MockIdentityLinker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterWebhookRoutes(r, secret, linker)
	return r
}

func signedRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	v, err := clerk.NewVerifier(webhookSecret)
	require.NoError(t, err)
	ts := time.Now().Unix()
	req, _ := http.NewRequest(http.MethodPost, "/clerk-webhook", bytes.NewBufferString(body))
	req.Header.Set(clerk.HeaderID, "msg_1")
	req.Header.Set(clerk.HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(clerk.HeaderSignature, "v1,"+v.Sign("msg_1", ts, []byte(body)))
	return req
}

func TestClerkWebhook_LinksPrimaryEmail(t *testing.T) {
	linker := new(MockIdentityLinker)
	linker.On("LinkExternalIdentity", mock.Anything, "ravi@example.com", "user_123").Return(domain.LinkLinked, nil).Once()
	r := newWebhookRouter(webhookSecret, linker)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, userCreatedBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "linked")
	linker.AssertExpectations(t)
}

func TestClerkWebhook_SkippedLinkStillOK(t *testing.T) {
	linker := new(MockIdentityLinker)
	linker.On("LinkExternalIdentity", mock.Anything, "ravi@example.com", "user_123").Return(domain.LinkSkippedNotFound, nil).Once()
	r := newWebhookRouter(webhookSecret, linker)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, userCreatedBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.LinkSkippedNotFound))
}

func TestClerkWebhook_IgnoresOtherEvents(t *testing.T) {
	linker := new(MockIdentityLinker)
	r := newWebhookRouter(webhookSecret, linker)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, `{"type":"session.created","data":{}}`))

	assert.Equal(t, http.StatusOK, w.Code)
	linker.AssertNotCalled(t, "LinkExternalIdentity", mock.Anything, mock.Anything, mock.Anything)
}

func TestClerkWebhook_Rejections(t *testing.T) {
	linker := new(MockIdentityLinker)

	t.Run("secret not configured", func(t *testing.T) {
		w := httptest.NewRecorder()
		newWebhookRouter("", linker).ServeHTTP(w, signedRequest(t, userCreatedBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing headers", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/clerk-webhook", bytes.NewBufferString(userCreatedBody))
		w := httptest.NewRecorder()
		newWebhookRouter(webhookSecret, linker).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("tampered body", func(t *testing.T) {
		req := signedRequest(t, userCreatedBody)
		req.Body = http.NoBody
		w := httptest.NewRecorder()
		newWebhookRouter(webhookSecret, linker).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		req := signedRequest(t, userCreatedBody)
		req.Header.Set(clerk.HeaderTimestamp, strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10))
		w := httptest.NewRecorder()
		newWebhookRouter(webhookSecret, linker).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	linker.AssertNotCalled(t, "LinkExternalIdentity", mock.Anything, mock.Anything, mock.Anything)
}
