package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"recivo/internal/logger"
	"recivo/internal/uuid"
)

// How long the "in-progress" lock is held before a crashed handler's key
// expires on its own.
const provisionalLockTTL = 60 * time.Second

// idempEntry is the per-key record stored in redis: first the provisional
// lock, then the final recorded response.
type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

// bodyRecorder tees the response body so a successful result can be
// replayed on a retried request.
type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency guards mutating endpoints against client retries. Requests
// must carry an Idempotency-Key header (a UUID); the key is scoped to the
// authenticated user and route. A retry with the same key and body replays
// the recorded response; a retry with a different body is rejected.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing Idempotency-Key header"})
			c.Abort()
			return
		}
		if !uuid.IsValid(key) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key must be a UUID"})
			c.Abort()
			return
		}

		userID := c.GetString("userID")

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		sum := sha256.Sum256(body)
		bhash := hex.EncodeToString(sum[:])

		redisKey := "idemp:" + strings.ToLower(c.Request.Method) + ":" + c.FullPath() + ":" + userID + ":" + key
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		entry := idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: time.Now().UTC()}
		payload, _ := json.Marshal(entry)
		ok, err := rdb.SetNX(ctx, redisKey, payload, provisionalLockTTL).Result()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "idempotency store unavailable"})
			c.Abort()
			return
		}
		if !ok {
			// Key exists: body must match, and a finished response can be replayed.
			var cur idempEntry
			if raw, errLoad := rdb.Get(ctx, redisKey).Bytes(); errLoad == nil {
				_ = json.Unmarshal(raw, &cur)
			} else {
				logger.Get().Warnw("failed to load idempotency entry", "key", redisKey, "error", errLoad)
			}

			if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
				c.JSON(http.StatusConflict, gin.H{"error": "Idempotency-Key reused with different body"})
				c.Abort()
				return
			}
			if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
				c.Data(cur.Code, "application/json", cur.Body)
				c.Abort()
				return
			}
			c.JSON(http.StatusConflict, gin.H{"error": "request is already in progress"})
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		final := idempEntry{
			Code:       rec.Status(),
			Body:       rec.buf.Bytes(),
			BodySHA256: bhash,
			CreatedAt:  time.Now().UTC(),
		}
		payload, _ = json.Marshal(final)
		if err := rdb.Set(context.Background(), redisKey, payload, ttl).Err(); err != nil {
			logger.Get().Warnw("failed to record idempotency entry", "key", redisKey, "error", err)
		}
	}
}
