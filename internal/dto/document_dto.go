// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/convert"
)

// DocumentUploadRequest 上传文档的表单参数
type DocumentUploadRequest struct {
	Tags      string `json:"tags" form:"tags"` // 逗号分隔的标签
	EnableCdn bool   `json:"enableCdn" form:"enableCdn"`
}

// DocumentListRequest 文档列表请求参数
type DocumentListRequest struct {
	Tag string `json:"tag" form:"tag"`
}

// DocumentResponse 文档元数据响应
type DocumentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
	Tags        []string  `json:"tags"`
	CdnEnabled  bool      `json:"cdnEnabled"`
	CdnURL      string    `json:"cdnUrl,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// NewDocumentResponse 从领域模型构造响应
func NewDocumentResponse(doc *domain.Document) *DocumentResponse {
	if doc == nil {
		return nil
	}
	resp := &DocumentResponse{}
	convert.StructAssign(doc, resp)
	return resp
}

// NewDocumentListResponse 从领域模型列表构造响应
func NewDocumentListResponse(docs []*domain.Document) []*DocumentResponse {
	list := make([]*DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		list = append(list, NewDocumentResponse(doc))
	}
	return list
}
