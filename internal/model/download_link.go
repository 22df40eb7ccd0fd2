package model

import "github.com/haierkeys/document-vault-service/pkg/timex"

const TableNameDownloadLink = "download_link"

// DownloadLink mapped from table <download_link>
type DownloadLink struct {
	ID         string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	DocumentID string     `gorm:"column:document_id;not null;index:idx_document_id" json:"documentId" form:"documentId"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	ExpiresAt  timex.Time `gorm:"column:expires_at;type:datetime;default:NULL;index:idx_expires_at" json:"expiresAt" form:"expiresAt"`
	IsActive   bool       `gorm:"column:is_active;default:true" json:"isActive" form:"isActive"`
	UseCdn     bool       `gorm:"column:use_cdn;default:false" json:"useCdn" form:"useCdn"`
	DirectURL  string     `gorm:"column:direct_url" json:"directUrl" form:"directUrl"`
}

// TableName DownloadLink's table name
func (*DownloadLink) TableName() string {
	return TableNameDownloadLink
}
