package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/pkg/tokenpkg"
)

// IdempotencyHeader is the standard HTTP header carrying the idempotency key.
const IdempotencyHeader = "Idempotency-Key"

const (
	idempotencyKeyPrefix = "idempotency:"
	idempotencyLockTTL   = 10 * time.Second
)

type bodyCapturer struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCapturer) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// idempotencyCacheKey scopes the client-chosen key to the authenticated
// caller so that two callers picking the same key never share a cached
// response.
func idempotencyCacheKey(c *gin.Context, key string) string {
	scope := "anonymous"

	if v, ok := c.Get(AuthPayloadKey); ok {
		if payload, ok := v.(*tokenpkg.Payload); ok {
			scope = payload.Username
		}
	}

	return idempotencyKeyPrefix + scope + ":" + key
}

// Idempotency replays the cached response for a repeated Idempotency-Key so
// that a retried submission cannot double-apply a ledger operation.
//
// Requests without the header pass through untouched. A concurrent request
// holding the same key gets 409 until the first one finishes.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		l := zerolog.Ctx(ctx)

		cacheKey := idempotencyCacheKey(c, key)
		lockKey := cacheKey + ":lock"

		cached, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Writer.Header().Set("X-Idempotency-Hit", "true")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()

			return
		}

		if err != redis.Nil {
			// A degraded cache must not block ledger operations.
			l.Error().Err(err).Msg("idempotency cache unavailable")
			c.Next()

			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "processing", idempotencyLockTTL).Result()
		if err != nil {
			l.Error().Err(err).Msg("idempotency lock unavailable")
			c.Next()

			return
		}

		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"status_code": http.StatusConflict,
				"message":     "a request with this idempotency key is in flight",
			})

			return
		}

		defer func() {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				l.Error().Err(err).Msg("idempotency lock release failed")
			}
		}()

		w := &bodyCapturer{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := w.Status(); status >= 200 && status < 300 {
			if err := rdb.Set(ctx, cacheKey, w.body.String(), ttl).Err(); err != nil {
				l.Error().Err(err).Msg("idempotency cache write failed")
			}
		}
	}
}
