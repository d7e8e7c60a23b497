package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

// luaRateLimit: Redis sliding-window limiter as one atomic Lua script.
// KEYS[1]=limiter key, ARGV[1]=now, ARGV[2]=window start, ARGV[3]=window
// seconds, ARGV[4]=member, ARGV[5]=limit.
// Returns the in-window request count, or -1 when the caller is over limit.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// AIRateLimit limits the AI proxy endpoints per client IP. Every request on
// those routes turns into a paid upstream model call, so they get a budget
// the catalog and checkout routes do not. Redis errors fail open: an
// unreachable limiter must not take the endpoints down with it.
func AIRateLimit(rdb *rd.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:ai:ip:%s", c.ClientIP())

		now := time.Now().Unix()
		windowSec := int64(window.Seconds())
		windowStart := now - windowSec
		member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

		res, err := rdb.Eval(c.Request.Context(), luaRateLimit, []string{key},
			now, windowStart, windowSec, member, limit).Int()
		if err != nil {
			c.Next()
			return
		}

		if res < 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many AI requests, try again shortly",
			})
			return
		}
		c.Next()
	}
}
