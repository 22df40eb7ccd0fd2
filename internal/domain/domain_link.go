package domain

import (
	"context"
	"time"
)

// DownloadLink time-limited download authorization for a document
// DownloadLink 文档的限时下载授权
type DownloadLink struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"` // 创建时固定，之后不变
	IsActive   bool      `json:"isActive"`
	UseCdn     bool      `json:"useCdn"`
	DirectURL  string    `json:"directUrl"` // 签发时生成的签名 URL，可为空
}

// IsExpired reports whether the link has passed its expiry at the
// given instant. Computed, never stored.
// IsExpired 判断链接在给定时刻是否已过期；派生值，不落库
func (l *DownloadLink) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// IsValid reports whether the link authorizes downloads at the given
// instant.
// IsValid 判断链接在给定时刻是否可用于下载
func (l *DownloadLink) IsValid(now time.Time) bool {
	return l.IsActive && !l.IsExpired(now)
}

// RemainingTTL 返回距过期的剩余时长，已过期时为 0
func (l *DownloadLink) RemainingTTL(now time.Time) time.Duration {
	if l.IsExpired(now) {
		return 0
	}
	return l.ExpiresAt.Sub(now)
}

// LinkRepository 下载链接仓储接口
type LinkRepository interface {
	// GetByID 根据 ID 获取链接
	GetByID(ctx context.Context, id string) (*DownloadLink, error)

	// Create 创建链接记录
	Create(ctx context.Context, link *DownloadLink) (*DownloadLink, error)

	// List 获取全部链接
	List(ctx context.Context) ([]*DownloadLink, error)

	// ListExpiredBefore 获取在给定时刻之前过期的链接
	ListExpiredBefore(ctx context.Context, t time.Time) ([]*DownloadLink, error)

	// Delete 物理删除链接记录
	Delete(ctx context.Context, id string) error
}
