package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/middleware"
	"github.com/SscSPs/psbook/internal/platform/clerk"
)

const maxWebhookBody = 1 << 20

type webhookHandler struct {
	secret string
	linker portssvc.IdentityLinkerSvc
}

// RegisterWebhookRoutes mounts the auth provider webhook. It sits outside /api/v1: deliveries
// are authenticated by their signature, not a bearer token.
func RegisterWebhookRoutes(r gin.IRouter, secret string, linker portssvc.IdentityLinkerSvc) {
	h := &webhookHandler{secret: secret, linker: linker}
	r.POST("/clerk-webhook", h.handleClerkWebhook)
}

// handleClerkWebhook godoc
// @Summary Clerk webhook
// @Description Verifies the Svix signature and links newly created users to employee records by email
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Missing headers or invalid signature"
// @Failure 500 {object} map[string]string "Webhook secret not configured"
// @Router /clerk-webhook [post]
func (h *webhookHandler) handleClerkWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.secret == "" {
		logger.Error("Webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}
	verifier, err := clerk.NewVerifier(h.secret)
	if err != nil {
		logger.Error("Webhook secret is malformed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		logger.Warn("Failed to read webhook body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	if err := verifier.Verify(c.Request.Header, body); err != nil {
		logger.Warn("Webhook verification failed", slog.String("error", err.Error()))
		if errors.Is(err, clerk.ErrMissingHeaders) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing svix headers"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	evt, err := clerk.ParseEvent(body)
	if err != nil {
		logger.Warn("Malformed webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
		return
	}
	logger = logger.With(slog.String("event_type", evt.Type), slog.String("svix_id", c.GetHeader(clerk.HeaderID)))

	if evt.Type != clerk.EventUserCreated {
		logger.Debug("Ignoring webhook event")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	user, err := evt.User()
	if err != nil {
		logger.Warn("Malformed user payload", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"status": "skipped"})
		return
	}
	email := user.PrimaryEmail()
	if email == "" || user.ID == "" {
		logger.Warn("User event without id or email, skipping", slog.String("external_id", user.ID))
		c.JSON(http.StatusOK, gin.H{"status": "skipped"})
		return
	}

	outcome, err := h.linker.LinkExternalIdentity(c.Request.Context(), email, user.ID)
	if err != nil {
		logger.Error("Failed to link identity", slog.String("external_id", user.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"status": "error"})
		return
	}
	logger.Info("Webhook processed", slog.String("external_id", user.ID), slog.String("outcome", string(outcome)))
	c.JSON(http.StatusOK, gin.H{"status": string(outcome)})
}
