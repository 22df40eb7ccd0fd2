package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/workerpool"

	"go.uber.org/zap"
)

func newTestCleanupService(repo *mockLinkRepo, now time.Time) (*cleanupService, *workerpool.Pool) {
	pool := workerpool.New(&workerpool.Config{MaxWorkers: 4, QueueSize: 64}, zap.NewNop())
	svc := &cleanupService{
		repo:    repo,
		pool:    pool,
		logger:  zap.NewNop(),
		nowFunc: func() time.Time { return now },
	}
	return svc, pool
}

func seedLinks(repo *mockLinkRepo, now time.Time, expired, live int) (expiredIDs, liveIDs []string) {
	for i := 0; i < expired; i++ {
		id := "expired-" + string(rune('a'+i))
		repo.links[id] = &domain.DownloadLink{ID: id, DocumentID: "doc-1", IsActive: true, ExpiresAt: now.Add(-time.Hour)}
		expiredIDs = append(expiredIDs, id)
	}
	for i := 0; i < live; i++ {
		id := "live-" + string(rune('a'+i))
		repo.links[id] = &domain.DownloadLink{ID: id, DocumentID: "doc-1", IsActive: true, ExpiresAt: now.Add(time.Hour)}
		liveIDs = append(liveIDs, id)
	}
	return expiredIDs, liveIDs
}

func TestPurgeExpiredDeletesOnlyExpired(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	_, liveIDs := seedLinks(repo, now, 5, 3)

	svc, pool := newTestCleanupService(repo, now)
	defer pool.Shutdown(context.Background())

	deleted, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if deleted != 5 {
		t.Errorf("deleted = %d, want 5", deleted)
	}

	for _, id := range liveIDs {
		if _, err := repo.GetByID(context.Background(), id); err != nil {
			t.Errorf("live link %s should survive the sweep: %v", id, err)
		}
	}
}

func TestPurgeExpiredSecondSweepFindsNothing(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	seedLinks(repo, now, 4, 2)

	svc, pool := newTestCleanupService(repo, now)
	defer pool.Shutdown(context.Background())

	first, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first != 4 {
		t.Errorf("first sweep deleted = %d, want 4", first)
	}

	second, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second != 0 {
		t.Errorf("second sweep deleted = %d, want 0", second)
	}
}

func TestPurgeExpiredSkipsAlreadyDeleted(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	expiredIDs, _ := seedLinks(repo, now, 3, 0)

	svc, pool := newTestCleanupService(repo, now)
	defer pool.Shutdown(context.Background())

	// 模拟并发清理抢先删除了一条
	expired, err := svc.FindExpired(context.Background())
	if err != nil {
		t.Fatalf("FindExpired failed: %v", err)
	}
	if len(expired) != 3 {
		t.Fatalf("expired = %d, want 3", len(expired))
	}
	if err := repo.Delete(context.Background(), expiredIDs[0]); err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2 (pre-removed record skipped)", deleted)
	}
}

func TestPurgeExpiredIsolatesRecordFailures(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	expiredIDs, _ := seedLinks(repo, now, 4, 0)
	repo.failIDs[expiredIDs[1]] = true

	svc, pool := newTestCleanupService(repo, now)
	defer pool.Shutdown(context.Background())

	deleted, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired should not fail outright: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3 (failing record skipped)", deleted)
	}

	// 失败的记录仍在，下一轮可重试
	if _, err := repo.GetByID(context.Background(), expiredIDs[1]); err != nil {
		t.Errorf("failing record should remain: %v", err)
	}
}

func TestFindExpired(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	seedLinks(repo, now, 2, 5)

	svc, pool := newTestCleanupService(repo, now)
	defer pool.Shutdown(context.Background())

	expired, err := svc.FindExpired(context.Background())
	if err != nil {
		t.Fatalf("FindExpired failed: %v", err)
	}
	if len(expired) != 2 {
		t.Errorf("expired = %d, want 2", len(expired))
	}
	for _, link := range expired {
		if !link.IsExpired(now) {
			t.Errorf("link %s reported expired but is not", link.ID)
		}
	}
}
