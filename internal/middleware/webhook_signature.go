package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Signature"

// maxWebhookBody bounds the body read for signature verification.
const maxWebhookBody = 1 << 20

// SignBody returns the hex HMAC-SHA256 of body under secret.
func SignBody(secret string, body []byte) string {
	return hex.EncodeToString(bodyMAC(secret, body))
}

func bodyMAC(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}

// WebhookSignature verifies the X-Signature header of gateway callbacks and
// restores the body for the handler. An empty secret disables the check.
func WebhookSignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context())

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			logger.Warn("Failed to read webhook body")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"code": "validation_error", "error": "Unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		got, err := hex.DecodeString(c.GetHeader(SignatureHeader))
		if err != nil || !hmac.Equal(got, bodyMAC(secret, body)) {
			logger.Warn("Webhook signature mismatch")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "error": "Invalid signature"})
			return
		}

		c.Next()
	}
}
