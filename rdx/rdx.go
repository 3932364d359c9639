package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// GetJSON loads a cached value into dest. A miss or an unreachable cache
// returns false; callers fall through to the provider.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	raw, err := Conn.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("redis get error:", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Println("redis cache decode error:", err)
		return false
	}
	return true
}

// SetJSON caches a value with a TTL. Failures are logged, not surfaced.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Println("redis cache encode error:", err)
		return
	}
	if err := Conn.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Println("redis set error:", err)
	}
}
