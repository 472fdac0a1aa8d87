package public

import (
	"io"
	"strings"

	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const stripeWebhookMaxBody = 1 << 20

// StripeWebhook Stripe webhook 回调，验签通过后才会修改订单
func (h *Handler) StripeWebhook(c *gin.Context) {
	log := requestLog(c)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, stripeWebhookMaxBody))
	if err != nil {
		log.Warnw("stripe_webhook_body_read_failed", "error", err)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	signature := strings.TrimSpace(c.GetHeader("Stripe-Signature"))
	log.Infow("stripe_webhook_received",
		"client_ip", c.ClientIP(),
		"body_size", len(body),
		"has_signature", signature != "",
	)

	if err := h.PaymentService.HandleStripeWebhook(signature, body); err != nil {
		log.Warnw("stripe_webhook_handle_failed", "error", err)
		respondWithMappedError(c, err, webhookErrorRules, response.CodeInternal, "error.payment_callback_failed")
		return
	}
	response.Success(c, gin.H{"received": true})
}
