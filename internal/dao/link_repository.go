package dao

import (
	"context"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/internal/model"
	"github.com/haierkeys/document-vault-service/pkg/timex"

	"gorm.io/gorm"
)

// linkRepository 实现 domain.LinkRepository 接口
type linkRepository struct {
	dao *Dao
}

// NewLinkRepository 创建 LinkRepository 实例
func NewLinkRepository(dao *Dao) domain.LinkRepository {
	return &linkRepository{dao: dao}
}

// link 获取链接查询对象
func (r *linkRepository) link(ctx context.Context) *gorm.DB {
	return r.dao.useTable("DownloadLink").WithContext(ctx)
}

// toDomain 将 DAO DownloadLink 转换为领域模型
func (r *linkRepository) toDomain(m *model.DownloadLink) *domain.DownloadLink {
	if m == nil {
		return nil
	}
	return &domain.DownloadLink{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		CreatedAt:  time.Time(m.CreatedAt),
		ExpiresAt:  time.Time(m.ExpiresAt),
		IsActive:   m.IsActive,
		UseCdn:     m.UseCdn,
		DirectURL:  m.DirectURL,
	}
}

// toModel 将领域模型转换为 DAO DownloadLink
func (r *linkRepository) toModel(d *domain.DownloadLink) *model.DownloadLink {
	if d == nil {
		return nil
	}
	return &model.DownloadLink{
		ID:         d.ID,
		DocumentID: d.DocumentID,
		CreatedAt:  timex.Time(d.CreatedAt),
		ExpiresAt:  timex.Time(d.ExpiresAt),
		IsActive:   d.IsActive,
		UseCdn:     d.UseCdn,
		DirectURL:  d.DirectURL,
	}
}

func (r *linkRepository) GetByID(ctx context.Context, id string) (*domain.DownloadLink, error) {
	var m model.DownloadLink
	if err := r.link(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *linkRepository) Create(ctx context.Context, link *domain.DownloadLink) (*domain.DownloadLink, error) {
	m := r.toModel(link)
	if err := r.link(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *linkRepository) List(ctx context.Context) ([]*domain.DownloadLink, error) {
	var ms []*model.DownloadLink
	if err := r.link(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	links := make([]*domain.DownloadLink, 0, len(ms))
	for _, m := range ms {
		links = append(links, r.toDomain(m))
	}
	return links, nil
}

func (r *linkRepository) ListExpiredBefore(ctx context.Context, t time.Time) ([]*domain.DownloadLink, error) {
	var ms []*model.DownloadLink
	if err := r.link(ctx).
		Where("expires_at < ?", timex.Time(t)).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	links := make([]*domain.DownloadLink, 0, len(ms))
	for _, m := range ms {
		links = append(links, r.toDomain(m))
	}
	return links, nil
}

func (r *linkRepository) Delete(ctx context.Context, id string) error {
	result := r.link(ctx).Where("id = ?", id).Delete(&model.DownloadLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
