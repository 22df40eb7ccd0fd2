// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// Document stored file metadata
// Document 文档领域模型
type Document struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	BlobKey     string    `json:"blobKey"` // 对象存储定位键
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
	Tags        []string  `json:"tags"`
	CdnEnabled  bool      `json:"cdnEnabled"`
	CdnURL      string    `json:"cdnUrl"` // 缓存的签名 CDN URL
	UploadedAt  time.Time `json:"uploadedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DocumentRepository 文档仓储接口
type DocumentRepository interface {
	// GetByID 根据 ID 获取文档
	GetByID(ctx context.Context, id string) (*Document, error)

	// Create 创建文档记录
	Create(ctx context.Context, doc *Document) (*Document, error)

	// UpdateCdnURL 更新缓存的 CDN URL
	UpdateCdnURL(ctx context.Context, id string, cdnURL string) error

	// List 获取全部文档
	List(ctx context.Context) ([]*Document, error)

	// ListByTag 根据标签获取文档
	ListByTag(ctx context.Context, tag string) ([]*Document, error)

	// Delete 物理删除文档记录
	Delete(ctx context.Context, id string) error
}
