// AngelaMos | 2026
// cache.go

package statistics

import (
	"context"
	"time"
)

// Cache is the JSON key/value store the dashboard is kept in; core.Redis
// satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
