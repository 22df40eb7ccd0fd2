package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/internal/model"
	"github.com/haierkeys/document-vault-service/pkg/timex"

	"gorm.io/gorm"
)

// documentRepository 实现 domain.DocumentRepository 接口
type documentRepository struct {
	dao *Dao
}

// NewDocumentRepository 创建 DocumentRepository 实例
func NewDocumentRepository(dao *Dao) domain.DocumentRepository {
	return &documentRepository{dao: dao}
}

// document 获取文档查询对象
func (r *documentRepository) document(ctx context.Context) *gorm.DB {
	return r.dao.useTable("Document").WithContext(ctx)
}

// toDomain 将 DAO Document 转换为领域模型
func (r *documentRepository) toDomain(m *model.Document) *domain.Document {
	if m == nil {
		return nil
	}
	var tags []string
	if m.Tags != "" {
		_ = json.Unmarshal([]byte(m.Tags), &tags)
	}
	return &domain.Document{
		ID:          m.ID,
		FileName:    m.FileName,
		BlobKey:     m.BlobKey,
		ContentType: m.ContentType,
		FileSize:    m.FileSize,
		Tags:        tags,
		CdnEnabled:  m.CdnEnabled,
		CdnURL:      m.CdnURL,
		UploadedAt:  time.Time(m.UploadedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为 DAO Document
func (r *documentRepository) toModel(d *domain.Document) *model.Document {
	if d == nil {
		return nil
	}
	tagBytes, _ := json.Marshal(d.Tags)
	return &model.Document{
		ID:          d.ID,
		FileName:    d.FileName,
		BlobKey:     d.BlobKey,
		ContentType: d.ContentType,
		FileSize:    d.FileSize,
		Tags:        string(tagBytes),
		CdnEnabled:  d.CdnEnabled,
		CdnURL:      d.CdnURL,
		UploadedAt:  timex.Time(d.UploadedAt),
		UpdatedAt:   timex.Time(d.UpdatedAt),
	}
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var m model.Document
	if err := r.document(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m := r.toModel(doc)
	if err := r.document(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *documentRepository) UpdateCdnURL(ctx context.Context, id string, cdnURL string) error {
	return r.document(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"cdn_url":    cdnURL,
			"updated_at": timex.Now(),
		}).Error
}

func (r *documentRepository) List(ctx context.Context) ([]*domain.Document, error) {
	var ms []*model.Document
	if err := r.document(ctx).Order("uploaded_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	docs := make([]*domain.Document, 0, len(ms))
	for _, m := range ms {
		docs = append(docs, r.toDomain(m))
	}
	return docs, nil
}

func (r *documentRepository) ListByTag(ctx context.Context, tag string) ([]*domain.Document, error) {
	// tags 为 JSON 数组字符串，按引号包裹的精确值匹配
	var ms []*model.Document
	if err := r.document(ctx).
		Where("tags LIKE ?", "%\""+tag+"\"%").
		Order("uploaded_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	docs := make([]*domain.Document, 0, len(ms))
	for _, m := range ms {
		docs = append(docs, r.toDomain(m))
	}
	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	result := r.document(ctx).Where("id = ?", id).Delete(&model.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
