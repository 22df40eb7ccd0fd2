package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/cdn"
	"github.com/haierkeys/document-vault-service/pkg/code"
	"github.com/haierkeys/document-vault-service/pkg/fileurl"
	"github.com/haierkeys/document-vault-service/pkg/logger"
	"github.com/haierkeys/document-vault-service/pkg/storage"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cachedCdnURLTTL lifetime of the CDN URL cached on the document record
// cachedCdnURLTTL 文档记录上缓存的 CDN URL 的有效期
const cachedCdnURLTTL = time.Hour

// DocumentService defines the document business service interface
// DocumentService 定义文档业务服务接口
type DocumentService interface {
	// Upload stores the content and persists document metadata
	// Upload 存储内容并持久化文档元数据
	Upload(ctx context.Context, fileName string, contentType string, file io.Reader, fileSize int64, tags []string, enableCdn bool) (*domain.Document, error)

	// Get retrieves document metadata, refreshing the cached CDN URL when enabled
	// Get 获取文档元数据，启用 CDN 时刷新缓存的 CDN URL
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List lists all documents
	// List 列出所有文档
	List(ctx context.Context) ([]*domain.Document, error)

	// ListByTag lists documents carrying the given tag
	// ListByTag 列出带有指定标签的文档
	ListByTag(ctx context.Context, tag string) ([]*domain.Document, error)

	// GetContent streams the raw document content from the object store
	// GetContent 从对象存储读取文档原始内容
	GetContent(ctx context.Context, id string) (io.ReadCloser, *domain.Document, error)

	// Delete removes the blob and the metadata record
	// Delete 删除对象与元数据记录
	Delete(ctx context.Context, id string) error
}

// documentService implementation of DocumentService interface
// documentService 实现 DocumentService 接口
type documentService struct {
	repo    domain.DocumentRepository // Document repository // 文档仓库
	store   storage.Storager          // Object store client // 对象存储客户端
	signer  *cdn.Signer               // CDN URL signer // CDN 签名器
	logger  *zap.Logger               // Logger // 日志器
	nowFunc func() time.Time          // Clock, replaceable in tests // 时钟，测试可替换
}

// NewDocumentService creates DocumentService instance
// NewDocumentService 创建 DocumentService 实例
func NewDocumentService(repo domain.DocumentRepository, store storage.Storager, signer *cdn.Signer, log *zap.Logger) DocumentService {
	return &documentService{
		repo:    repo,
		store:   store,
		signer:  signer,
		logger:  log,
		nowFunc: time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, fileName string, contentType string, file io.Reader, fileSize int64, tags []string, enableCdn bool) (*domain.Document, error) {
	if fileName == "" {
		return nil, code.ErrorInvalidParams
	}

	blobKey := fileurl.GetRandomBlobKey(fileName)

	if _, err := s.store.SendFile(blobKey, file, contentType); err != nil {
		s.logger.Error("document: blob upload failed",
			zap.String(logger.FieldBlobKey, blobKey),
			zap.Error(err))
		return nil, code.ErrorStorageUpload
	}

	doc := &domain.Document{
		ID:          uuid.New().String(),
		FileName:    fileName,
		BlobKey:     blobKey,
		ContentType: contentType,
		FileSize:    fileSize,
		Tags:        normalizeTags(tags),
		CdnEnabled:  enableCdn,
		UploadedAt:  s.nowFunc(),
		UpdatedAt:   s.nowFunc(),
	}

	if enableCdn && s.signer.IsEnabled() {
		doc.CdnURL = s.signer.SignURL(blobKey, cachedCdnURLTTL)
	}

	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		// 元数据落库失败时回收已上传的对象
		if delErr := s.store.Delete(blobKey); delErr != nil {
			s.logger.Warn("document: orphan blob cleanup failed",
				zap.String(logger.FieldBlobKey, blobKey),
				zap.Error(delErr))
		}
		return nil, errors.Wrap(err, "document create")
	}

	s.logger.Info("document: uploaded",
		zap.String(logger.FieldDocumentID, created.ID),
		zap.String(logger.FieldBlobKey, blobKey),
		zap.Int64(logger.FieldSize, fileSize))
	return created, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorDocumentNotFound
		}
		return nil, errors.Wrap(err, "document get")
	}

	// CDN 启用时刷新缓存 URL，失败不阻断读取
	if doc.CdnEnabled && s.signer.IsEnabled() {
		if fresh := s.signer.SignURL(doc.BlobKey, cachedCdnURLTTL); fresh != "" && fresh != doc.CdnURL {
			doc.CdnURL = fresh
			if err := s.repo.UpdateCdnURL(ctx, doc.ID, fresh); err != nil {
				s.logger.Warn("document: cdn url cache update failed",
					zap.String(logger.FieldDocumentID, doc.ID),
					zap.Error(err))
			}
		}
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context) ([]*domain.Document, error) {
	return s.repo.List(ctx)
}

func (s *documentService) ListByTag(ctx context.Context, tag string) ([]*domain.Document, error) {
	if tag == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByTag(ctx, tag)
}

func (s *documentService) GetContent(ctx context.Context, id string) (io.ReadCloser, *domain.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, code.ErrorDocumentNotFound
		}
		return nil, nil, errors.Wrap(err, "document get")
	}

	body, err := s.store.GetFile(doc.BlobKey)
	if err != nil {
		s.logger.Error("document: blob fetch failed",
			zap.String(logger.FieldDocumentID, doc.ID),
			zap.String(logger.FieldBlobKey, doc.BlobKey),
			zap.Error(err))
		return nil, nil, code.ErrorStorageDownload
	}
	return body, doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorDocumentNotFound
		}
		return errors.Wrap(err, "document get")
	}

	// 先删对象，失败时保留元数据便于重试
	if err := s.store.Delete(doc.BlobKey); err != nil {
		s.logger.Error("document: blob delete failed",
			zap.String(logger.FieldDocumentID, doc.ID),
			zap.String(logger.FieldBlobKey, doc.BlobKey),
			zap.Error(err))
		return code.ErrorStorageDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "document delete")
	}

	s.logger.Info("document: deleted",
		zap.String(logger.FieldDocumentID, id),
		zap.String(logger.FieldBlobKey, doc.BlobKey))
	return nil
}

// normalizeTags trims blanks and drops empties
// normalizeTags 去除空白并丢弃空标签
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
