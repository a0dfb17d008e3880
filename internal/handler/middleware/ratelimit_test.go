//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC)

	t.Run("burst is spent then refilled", func(t *testing.T) {
		rl := NewRateLimiter(1, 2, nil)
		assert.True(t, rl.allow("a", now))
		assert.True(t, rl.allow("a", now))
		assert.False(t, rl.allow("a", now))
		assert.True(t, rl.allow("a", now.Add(time.Second)))
	})

	t.Run("callers have separate buckets", func(t *testing.T) {
		rl := NewRateLimiter(1, 1, nil)
		assert.True(t, rl.allow("a", now))
		assert.False(t, rl.allow("a", now))
		assert.True(t, rl.allow("b", now))
	})

	t.Run("idle buckets are swept", func(t *testing.T) {
		rl := NewRateLimiter(1, 1, nil)
		rl.allow("a", now)
		rl.allow("b", now.Add(rl.idleTTL+time.Minute))
		_, kept := rl.visitors["a"]
		assert.False(t, kept)
		assert.Len(t, rl.visitors, 1)
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rejected := 0
	rl := NewRateLimiter(0.001, 1, func() { rejected++ })

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if h := c.GetHeader("X-User"); h != "" {
			c.Set(ctxUserIDKey, uuid.MustParse(h))
		}
		c.Next()
	})
	router.POST("/x", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		if user != "" {
			req.Header.Set("X-User", user)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusNoContent, send(userID.String()).Code)

	w := send(userID.String())
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":{"message":"Too many requests"}}`, w.Body.String())
	assert.Equal(t, 1, rejected)

	// anonymous callers fall back to the client ip bucket
	assert.Equal(t, http.StatusNoContent, send("").Code)
	assert.Equal(t, http.StatusNoContent, send(uuid.NewString()).Code)
}
