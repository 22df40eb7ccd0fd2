package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/logger"
	"github.com/haierkeys/document-vault-service/pkg/workerpool"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupService defines the expired link cleanup service interface
// CleanupService 定义过期链接清理服务接口
type CleanupService interface {
	// FindExpired lists link records whose expiry has passed
	// FindExpired 列出已过期的链接记录
	FindExpired(ctx context.Context) ([]*domain.DownloadLink, error)

	// PurgeExpired deletes expired links and returns the number actually
	// removed. Per-record failures are logged and skipped; a record
	// already removed by a concurrent sweep is not counted.
	// PurgeExpired 删除过期链接并返回实际删除数。单条失败记录日志后跳过；
	// 被并发清理抢先删除的记录不计入
	PurgeExpired(ctx context.Context) (int, error)
}

// cleanupService implementation of CleanupService interface
// cleanupService 实现 CleanupService 接口
type cleanupService struct {
	repo    domain.LinkRepository // Link repository // 链接仓库
	pool    *workerpool.Pool      // Deletion fan-out pool // 删除扇出池
	logger  *zap.Logger           // Logger // 日志器
	nowFunc func() time.Time      // Clock, replaceable in tests // 时钟，测试可替换
}

// NewCleanupService creates CleanupService instance
// NewCleanupService 创建 CleanupService 实例
func NewCleanupService(repo domain.LinkRepository, pool *workerpool.Pool, log *zap.Logger) CleanupService {
	return &cleanupService{
		repo:    repo,
		pool:    pool,
		logger:  log,
		nowFunc: time.Now,
	}
}

func (s *cleanupService) FindExpired(ctx context.Context) ([]*domain.DownloadLink, error) {
	return s.repo.ListExpiredBefore(ctx, s.nowFunc())
}

func (s *cleanupService) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := s.FindExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "cleanup find expired")
	}
	if len(expired) == 0 {
		return 0, nil
	}

	var deleted atomic.Int64
	var skipped atomic.Int64
	var wg sync.WaitGroup

	for _, link := range expired {
		linkID := link.ID
		wg.Add(1)
		err := s.pool.SubmitAsync(ctx, func(taskCtx context.Context) error {
			defer wg.Done()
			if err := s.repo.Delete(taskCtx, linkID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// 并发清理已抢先删除
					skipped.Add(1)
					return nil
				}
				skipped.Add(1)
				s.logger.Warn("cleanup: link delete failed",
					zap.String(logger.FieldLinkID, linkID),
					zap.Error(err))
				return nil
			}
			deleted.Add(1)
			return nil
		})
		if err != nil {
			// 提交失败同样只跳过该条
			wg.Done()
			skipped.Add(1)
			s.logger.Warn("cleanup: task submit failed",
				zap.String(logger.FieldLinkID, linkID),
				zap.Error(err))
		}
	}
	wg.Wait()

	s.logger.Info("cleanup: sweep finished",
		zap.Int(logger.FieldCount, int(deleted.Load())),
		zap.Int64("skipped", skipped.Load()))
	return int(deleted.Load()), nil
}
