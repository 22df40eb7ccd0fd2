package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/code"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockDocWriteRepo struct {
	domain.DocumentRepository

	docs      map[string]*domain.Document
	createErr error
	deletedID string
}

func (m *mockDocWriteRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *doc
	return &cp, nil
}

func (m *mockDocWriteRepo) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *doc
	m.docs[doc.ID] = &cp
	return doc, nil
}

func (m *mockDocWriteRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.docs, id)
	m.deletedID = id
	return nil
}

func newTestDocumentService(repo *mockDocWriteRepo, store *mockStorager) *documentService {
	return &documentService{
		repo:    repo,
		store:   store,
		logger:  zap.NewNop(),
		nowFunc: time.Now,
	}
}

func TestUploadPersistsMetadata(t *testing.T) {
	repo := &mockDocWriteRepo{docs: map[string]*domain.Document{}}
	store := &mockStorager{}
	svc := newTestDocumentService(repo, store)

	doc, err := svc.Upload(context.Background(), "report.pdf", "application/pdf",
		strings.NewReader("content"), 7, []string{" finance ", "", "q3"}, false)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if doc.ID == "" {
		t.Error("expected generated document id")
	}
	if !strings.HasSuffix(doc.BlobKey, ".pdf") {
		t.Errorf("BlobKey = %q, want original extension kept", doc.BlobKey)
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "finance" || doc.Tags[1] != "q3" {
		t.Errorf("Tags = %v, want trimmed non-empty tags", doc.Tags)
	}
	if _, ok := repo.docs[doc.ID]; !ok {
		t.Error("expected metadata persisted")
	}
}

func TestUploadCleansUpBlobOnPersistFailure(t *testing.T) {
	repo := &mockDocWriteRepo{docs: map[string]*domain.Document{}, createErr: errors.New("disk full")}
	store := &mockStorager{}
	svc := newTestDocumentService(repo, store)

	_, err := svc.Upload(context.Background(), "report.pdf", "application/pdf",
		strings.NewReader("content"), 7, nil, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.deletions) != 1 {
		t.Errorf("deletions = %v, want the orphan blob removed", store.deletions)
	}
}

func TestGetUnknownDocument(t *testing.T) {
	repo := &mockDocWriteRepo{docs: map[string]*domain.Document{}}
	svc := newTestDocumentService(repo, &mockStorager{})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, code.ErrorDocumentNotFound) {
		t.Errorf("got %v, want ErrorDocumentNotFound", err)
	}
}

func TestDeleteRemovesBlobAndRecord(t *testing.T) {
	doc := testDoc("doc-1", false)
	repo := &mockDocWriteRepo{docs: map[string]*domain.Document{"doc-1": doc}}
	store := &mockStorager{}
	svc := newTestDocumentService(repo, store)

	if err := svc.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(store.deletions) != 1 || store.deletions[0] != doc.BlobKey {
		t.Errorf("deletions = %v, want blob %q", store.deletions, doc.BlobKey)
	}
	if repo.deletedID != "doc-1" {
		t.Errorf("deletedID = %q, want doc-1", repo.deletedID)
	}
}
