package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return New(db, &DatabaseConfig{Type: "sqlite", AutoMigrate: true})
}

func newTestLink(documentID string, expiresAt time.Time) *domain.DownloadLink {
	now := time.Now()
	return &domain.DownloadLink{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		CreatedAt:  now,
		ExpiresAt:  expiresAt,
		IsActive:   true,
	}
}

func TestLinkRepositoryCreateGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewLinkRepository(d)
	ctx := context.Background()

	link := newTestLink("doc-1", time.Now().Add(time.Hour))
	link.UseCdn = true
	link.DirectURL = "https://cdn.example.com/blob/a.pdf?sig=x"

	created, err := repo.Create(ctx, link)
	assert.Nil(t, err)
	assert.Equal(t, link.ID, created.ID)

	got, err := repo.GetByID(ctx, link.ID)
	assert.Nil(t, err)
	assert.Equal(t, "doc-1", got.DocumentID)
	assert.True(t, got.IsActive)
	assert.True(t, got.UseCdn)
	assert.Equal(t, link.DirectURL, got.DirectURL)
}

func TestLinkRepositoryGetMissing(t *testing.T) {
	d := newTestDao(t)
	repo := NewLinkRepository(d)

	_, err := repo.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLinkRepositoryListExpiredBefore(t *testing.T) {
	d := newTestDao(t)
	repo := NewLinkRepository(d)
	ctx := context.Background()
	now := time.Now()

	expired1 := newTestLink("doc-1", now.Add(-2*time.Hour))
	expired2 := newTestLink("doc-1", now.Add(-time.Minute))
	live := newTestLink("doc-2", now.Add(time.Hour))

	for _, l := range []*domain.DownloadLink{expired1, expired2, live} {
		_, err := repo.Create(ctx, l)
		assert.Nil(t, err)
	}

	expired, err := repo.ListExpiredBefore(ctx, now)
	assert.Nil(t, err)
	assert.Len(t, expired, 2)
	for _, l := range expired {
		assert.True(t, l.IsExpired(now))
	}
}

func TestLinkRepositoryDelete(t *testing.T) {
	d := newTestDao(t)
	repo := NewLinkRepository(d)
	ctx := context.Background()

	link := newTestLink("doc-1", time.Now().Add(time.Hour))
	_, err := repo.Create(ctx, link)
	assert.Nil(t, err)

	assert.Nil(t, repo.Delete(ctx, link.ID))

	// 重复删除返回未找到
	assert.ErrorIs(t, repo.Delete(ctx, link.ID), gorm.ErrRecordNotFound)
}
