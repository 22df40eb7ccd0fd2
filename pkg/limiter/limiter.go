package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 桶匹配键（URI 前缀）
	Key string
	// FillInterval 令牌填充间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次填充的令牌数
	Quantum int64
}

// Limiter 限流器基础结构
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}
