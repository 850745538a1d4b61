package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.POST("/recommend-feed", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterDisabled(t *testing.T) {
	var nilLimiter *RateLimiter
	for _, rl := range []*RateLimiter{nilLimiter, NewAdvisorRateLimiter(nil, 10, nil)} {
		rr := httptest.NewRecorder()
		limitedRouter(rl).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recommend-feed", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rr := httptest.NewRecorder()
	limitedRouter(NewAdvisorRateLimiter(client, 1, nil)).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recommend-feed", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}
