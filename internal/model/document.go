package model

import "github.com/haierkeys/document-vault-service/pkg/timex"

const TableNameDocument = "document"

// Document mapped from table <document>
type Document struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	FileName    string     `gorm:"column:file_name;not null" json:"fileName" form:"fileName"`
	BlobKey     string     `gorm:"column:blob_key;not null;index:idx_blob_key" json:"blobKey" form:"blobKey"`
	ContentType string     `gorm:"column:content_type" json:"contentType" form:"contentType"`
	FileSize    int64      `gorm:"column:file_size;default:0" json:"fileSize" form:"fileSize"`
	Tags        string     `gorm:"column:tags" json:"tags" form:"tags"` // JSON 数组
	CdnEnabled  bool       `gorm:"column:cdn_enabled;default:false" json:"cdnEnabled" form:"cdnEnabled"`
	CdnURL      string     `gorm:"column:cdn_url" json:"cdnUrl" form:"cdnUrl"`
	UploadedAt  timex.Time `gorm:"column:uploaded_at;type:datetime;default:NULL;autoCreateTime:false" json:"uploadedAt" form:"uploadedAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Document's table name
func (*Document) TableName() string {
	return TableNameDocument
}
