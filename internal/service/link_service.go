package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/cdn"
	"github.com/haierkeys/document-vault-service/pkg/code"
	"github.com/haierkeys/document-vault-service/pkg/logger"
	"github.com/haierkeys/document-vault-service/pkg/storage"
	"github.com/haierkeys/document-vault-service/pkg/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResolvedContent is the outcome of a successful link resolution.
// FileName and ContentType always come from the document record, never
// from the transport.
// ResolvedContent 链接解析成功的结果；文件名与类型始终取自文档记录
type ResolvedContent struct {
	Body        io.ReadCloser
	FileName    string
	ContentType string
}

// LinkService defines the download link business service interface
// LinkService 定义下载链接业务服务接口
type LinkService interface {
	// Generate issues a new download link for a document
	// Generate 为文档签发新的下载链接
	Generate(ctx context.Context, documentID string, expiry time.Duration) (*domain.DownloadLink, error)

	// Validate reports whether the link currently authorizes downloads;
	// an unknown link is false, not an error
	// Validate 判断链接当前是否可用于下载；未知链接返回 false 而非错误
	Validate(ctx context.Context, linkID string) (bool, error)

	// Resolve exchanges a link for the document content. Every failure
	// mode yields the same invalid-or-expired result
	// Resolve 用链接换取文档内容；一切失败都归并为“无效或已过期”
	Resolve(ctx context.Context, linkID string) (*ResolvedContent, error)

	// List lists all link records
	// List 列出所有链接记录
	List(ctx context.Context) ([]*domain.DownloadLink, error)
}

// linkService implementation of LinkService interface
// linkService 实现 LinkService 接口
type linkService struct {
	repo       domain.LinkRepository     // Link repository // 链接仓库
	docRepo    domain.DocumentRepository // Document repository // 文档仓库
	store      storage.Storager          // Object store client // 对象存储客户端
	signer     *cdn.Signer               // CDN URL signer // CDN 签名器
	logger     *zap.Logger               // Logger // 日志器
	httpClient *http.Client              // CDN fetch client // CDN 拉取客户端
	nowFunc    func() time.Time          // Clock, replaceable in tests // 时钟，测试可替换
}

// NewLinkService creates LinkService instance
// NewLinkService 创建 LinkService 实例
func NewLinkService(repo domain.LinkRepository, docRepo domain.DocumentRepository, store storage.Storager, signer *cdn.Signer, log *zap.Logger) LinkService {
	return &linkService{
		repo:       repo,
		docRepo:    docRepo,
		store:      store,
		signer:     signer,
		logger:     log,
		httpClient: &http.Client{Timeout: cdnFetchTimeout},
		nowFunc:    time.Now,
	}
}

func (s *linkService) Generate(ctx context.Context, documentID string, expiry time.Duration) (*domain.DownloadLink, error) {
	if expiry <= 0 {
		return nil, code.ErrorLinkExpiryInvalid
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorDocumentNotFound
		}
		return nil, errors.Wrap(err, "link generate")
	}

	now := s.nowFunc()
	link := &domain.DownloadLink{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(expiry),
		IsActive:   true,
	}

	if doc.CdnEnabled && s.signer.IsEnabled() {
		link.UseCdn = true
		// 签名失败时 DirectURL 为空，解析时会重新签名
		link.DirectURL = s.signer.SignURL(doc.BlobKey, expiry)
	}

	created, err := s.repo.Create(ctx, link)
	if err != nil {
		return nil, code.ErrorLinkCreateFailed
	}

	s.logger.Info("link: issued",
		zap.String(logger.FieldLinkID, created.ID),
		zap.String(logger.FieldDocumentID, doc.ID),
		zap.Time("expiresAt", created.ExpiresAt))
	return created, nil
}

func (s *linkService) Validate(ctx context.Context, linkID string) (bool, error) {
	link, err := s.repo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "link validate")
	}
	return link.IsValid(s.nowFunc()), nil
}

func (s *linkService) Resolve(ctx context.Context, linkID string) (*ResolvedContent, error) {
	link, err := s.repo.GetByID(ctx, linkID)
	if err != nil {
		return nil, code.ErrorLinkInvalidOrExpired
	}

	now := s.nowFunc()
	if !link.IsValid(now) {
		return nil, code.ErrorLinkInvalidOrExpired
	}

	doc, err := s.docRepo.GetByID(ctx, link.DocumentID)
	if err != nil {
		return nil, code.ErrorLinkInvalidOrExpired
	}

	var body io.ReadCloser
	if doc.CdnEnabled {
		body = s.fetchViaCdn(ctx, link, doc, now)
	}
	if body == nil {
		// 非 CDN 文档直接读取对象存储；CDN 失败时回退一次
		body, err = s.store.GetFile(doc.BlobKey)
		if err != nil {
			s.logger.Warn("link: object store fetch failed",
				zap.String(logger.FieldLinkID, link.ID),
				zap.String(logger.FieldBlobKey, doc.BlobKey),
				zap.Error(err))
			return nil, code.ErrorLinkInvalidOrExpired
		}
	}

	return &ResolvedContent{
		Body:        body,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
	}, nil
}

// fetchViaCdn makes a single bounded CDN attempt. URL precedence:
// the link's issued URL, then the document's cached URL, then a fresh
// signature covering the remaining lifetime rounded up to whole hours.
// Returns nil on any failure; the caller falls back to the object store.
// fetchViaCdn 进行一次有界的 CDN 拉取。URL 优先级：链接签发 URL、
// 文档缓存 URL、按剩余有效期向上取整到小时的新签名。
// 任何失败返回 nil，由调用方回退对象存储
func (s *linkService) fetchViaCdn(ctx context.Context, link *domain.DownloadLink, doc *domain.Document, now time.Time) io.ReadCloser {
	fetchURL := link.DirectURL
	if fetchURL == "" {
		fetchURL = doc.CdnURL
	}
	if fetchURL == "" {
		expiry := time.Duration(util.CeilHours(link.RemainingTTL(now))) * time.Hour
		fetchURL = s.signer.SignURL(doc.BlobKey, expiry)
	}
	if fetchURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("link: cdn fetch failed",
			zap.String(logger.FieldLinkID, link.ID),
			zap.Error(err))
		return nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		s.logger.Warn("link: cdn fetch rejected",
			zap.String(logger.FieldLinkID, link.ID),
			zap.Int("status", resp.StatusCode))
		return nil
	}
	return resp.Body
}

func (s *linkService) List(ctx context.Context) ([]*domain.DownloadLink, error) {
	return s.repo.List(ctx)
}
