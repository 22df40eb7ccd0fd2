package dao

import (
	"context"
	"testing"

	"github.com/haierkeys/document-vault-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestDocument(fileName string, tags []string) *domain.Document {
	return &domain.Document{
		ID:          uuid.New().String(),
		FileName:    fileName,
		BlobKey:     uuid.New().String() + ".bin",
		ContentType: "application/octet-stream",
		FileSize:    64,
		Tags:        tags,
	}
}

func TestDocumentRepositoryCreateAndGet(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	doc := newTestDocument("report.pdf", []string{"finance", "2026"})
	created, err := repo.Create(ctx, doc)
	assert.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "report.pdf", got.FileName)
	assert.Equal(t, []string{"finance", "2026"}, got.Tags)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDocumentRepositoryListByTag(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	for _, tags := range [][]string{
		{"finance"},
		{"finance", "archive"},
		{"legal"},
	} {
		_, err := repo.Create(ctx, newTestDocument("f.bin", tags))
		assert.NoError(t, err)
	}

	docs, err := repo.ListByTag(ctx, "finance")
	assert.NoError(t, err)
	assert.Len(t, docs, 2)

	all, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDocumentRepositoryUpdateCdnURL(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	doc := newTestDocument("img.png", nil)
	doc.CdnEnabled = true
	created, err := repo.Create(ctx, doc)
	assert.NoError(t, err)

	err = repo.UpdateCdnURL(ctx, created.ID, "https://cdn.example.com/img.png?sig=abc")
	assert.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img.png?sig=abc", got.CdnURL)
}

func TestDocumentRepositoryDelete(t *testing.T) {
	repo := NewDocumentRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestDocument("gone.txt", nil))
	assert.NoError(t, err)

	assert.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), gorm.ErrRecordNotFound)
}
