package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutSessionHeader carries the id of the browser's checkout conversation.
const CheckoutSessionHeader = "X-Checkout-Session"

const ctxSessionIDKey = "checkout_session_id"

func RequireCheckoutSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CheckoutSessionHeader)
		id, err := uuid.Parse(raw)
		if raw == "" || err != nil || id == uuid.Nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"message": CheckoutSessionHeader + " header must be a UUID"},
			})
			c.Abort()
			return
		}
		c.Set(ctxSessionIDKey, id)
		c.Next()
	}
}

func GetCheckoutSessionID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
