package dto

import (
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/convert"
)

// LinkCreateRequest 签发下载链接请求
type LinkCreateRequest struct {
	DocumentID string `json:"documentId" form:"documentId" binding:"required"`
	// ExpiryHours 链接有效时长（小时），必须为正数；缺省时使用配置的默认有效期
	ExpiryHours *float64 `json:"expiryHours" form:"expiryHours"`
}

// LinkResponse 下载链接响应
type LinkResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	IsActive   bool      `json:"isActive"`
	UseCdn     bool      `json:"useCdn"`
	DirectURL  string    `json:"directUrl,omitempty"`
}

// LinkValidateResponse 链接有效性响应
type LinkValidateResponse struct {
	IsValid bool `json:"isValid"`
}

// LinkCleanupResponse 过期链接清理结果
type LinkCleanupResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// NewLinkResponse 从领域模型构造响应
func NewLinkResponse(link *domain.DownloadLink) *LinkResponse {
	if link == nil {
		return nil
	}
	resp := &LinkResponse{}
	convert.StructAssign(link, resp)
	return resp
}

// NewLinkListResponse 从领域模型列表构造响应
func NewLinkListResponse(links []*domain.DownloadLink) []*LinkResponse {
	list := make([]*LinkResponse, 0, len(links))
	for _, link := range links {
		list = append(list, NewLinkResponse(link))
	}
	return list
}
