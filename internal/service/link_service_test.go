package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/pkg/cdn"
	"github.com/haierkeys/document-vault-service/pkg/code"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockLinkRepo struct {
	domain.LinkRepository

	mu      sync.Mutex
	links   map[string]*domain.DownloadLink
	creates int
	failIDs map[string]bool
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{links: map[string]*domain.DownloadLink{}, failIDs: map[string]bool{}}
}

func (m *mockLinkRepo) GetByID(ctx context.Context, id string) (*domain.DownloadLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *link
	return &cp, nil
}

func (m *mockLinkRepo) Create(ctx context.Context, link *domain.DownloadLink) (*domain.DownloadLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	cp := *link
	m.links[link.ID] = &cp
	return link, nil
}

func (m *mockLinkRepo) List(ctx context.Context) ([]*domain.DownloadLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.DownloadLink, 0, len(m.links))
	for _, l := range m.links {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockLinkRepo) ListExpiredBefore(ctx context.Context, t time.Time) ([]*domain.DownloadLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.DownloadLink
	for _, l := range m.links {
		if l.ExpiresAt.Before(t) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockLinkRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIDs[id] {
		return errors.New("database locked")
	}
	if _, ok := m.links[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.links, id)
	return nil
}

type mockDocRepo struct {
	domain.DocumentRepository

	docs map[string]*domain.Document
}

func (m *mockDocRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *doc
	return &cp, nil
}

type mockStorager struct {
	content   string
	getErr    error
	getCalls  int
	deletions []string
}

func (m *mockStorager) SendFile(fileKey string, file io.Reader, cType string) (string, error) {
	return fileKey, nil
}

func (m *mockStorager) SendContent(fileKey string, content []byte) (string, error) {
	return fileKey, nil
}

func (m *mockStorager) GetFile(fileKey string) (io.ReadCloser, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return io.NopCloser(strings.NewReader(m.content)), nil
}

func (m *mockStorager) Delete(fileKey string) error {
	m.deletions = append(m.deletions, fileKey)
	return nil
}

func (m *mockStorager) IsExist(fileKey string) (bool, error) {
	return true, nil
}

type stubURLSigner struct {
	url     string
	err     error
	expires []time.Duration
}

func (s *stubURLSigner) SignURL(fileKey string, expiry time.Duration) (string, error) {
	s.expires = append(s.expires, expiry)
	return s.url, s.err
}

func newTestLinkService(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager, signer *cdn.Signer, now time.Time) *linkService {
	return &linkService{
		repo:       repo,
		docRepo:    docRepo,
		store:      store,
		signer:     signer,
		logger:     zap.NewNop(),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		nowFunc:    func() time.Time { return now },
	}
}

func testDoc(id string, cdnEnabled bool) *domain.Document {
	return &domain.Document{
		ID:          id,
		FileName:    "report.pdf",
		BlobKey:     "blob/" + id + ".pdf",
		ContentType: "application/pdf",
		FileSize:    1024,
		CdnEnabled:  cdnEnabled,
	}
}

func TestGenerateRejectsNonPositiveExpiry(t *testing.T) {
	repo := newMockLinkRepo()
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", false)}}
	svc := newTestLinkService(repo, docRepo, &mockStorager{}, nil, time.Now())

	for _, expiry := range []time.Duration{0, -time.Hour} {
		_, err := svc.Generate(context.Background(), "doc-1", expiry)
		if !errors.Is(err, code.ErrorLinkExpiryInvalid) {
			t.Errorf("expiry %v: got %v, want ErrorLinkExpiryInvalid", expiry, err)
		}
	}
	if repo.creates != 0 {
		t.Errorf("expected nothing persisted, got %d creates", repo.creates)
	}
}

func TestGenerateRejectsUnknownDocument(t *testing.T) {
	repo := newMockLinkRepo()
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{}}
	svc := newTestLinkService(repo, docRepo, &mockStorager{}, nil, time.Now())

	_, err := svc.Generate(context.Background(), "missing", time.Hour)
	if !errors.Is(err, code.ErrorDocumentNotFound) {
		t.Fatalf("got %v, want ErrorDocumentNotFound", err)
	}
	if repo.creates != 0 {
		t.Errorf("expected nothing persisted, got %d creates", repo.creates)
	}
}

func TestGenerateCdnDocument(t *testing.T) {
	repo := newMockLinkRepo()
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", true)}}
	urlSigner := &stubURLSigner{url: "https://cdn.example.com/blob/doc-1.pdf?sig=x"}
	signer := cdn.NewSigner(&cdn.Config{IsEnabled: true}, urlSigner)
	now := time.Now()
	svc := newTestLinkService(repo, docRepo, &mockStorager{}, signer, now)

	link, err := svc.Generate(context.Background(), "doc-1", 2*time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !link.UseCdn {
		t.Error("expected UseCdn for a cdn-enabled document")
	}
	if link.DirectURL != urlSigner.url {
		t.Errorf("DirectURL = %q, want signed url", link.DirectURL)
	}
	if !link.ExpiresAt.Equal(now.Add(2 * time.Hour)) {
		t.Errorf("ExpiresAt = %v, want %v", link.ExpiresAt, now.Add(2*time.Hour))
	}
	if len(urlSigner.expires) != 1 || urlSigner.expires[0] != 2*time.Hour {
		t.Errorf("signer expiry calls = %v, want one call with link expiry", urlSigner.expires)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}
}

func TestGenerateIssuesLinkWhenSigningFails(t *testing.T) {
	repo := newMockLinkRepo()
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", true)}}
	signer := cdn.NewSigner(&cdn.Config{IsEnabled: true}, &stubURLSigner{err: errors.New("sign failed")})
	svc := newTestLinkService(repo, docRepo, &mockStorager{}, signer, time.Now())

	link, err := svc.Generate(context.Background(), "doc-1", time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !link.UseCdn {
		t.Error("expected UseCdn even when signing failed")
	}
	if link.DirectURL != "" {
		t.Errorf("DirectURL = %q, want empty", link.DirectURL)
	}
}

func TestValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		link *domain.DownloadLink
		want bool
	}{
		{
			name: "active and not expired",
			link: &domain.DownloadLink{ID: "l1", IsActive: true, ExpiresAt: now.Add(time.Hour)},
			want: true,
		},
		{
			name: "expired",
			link: &domain.DownloadLink{ID: "l2", IsActive: true, ExpiresAt: now.Add(-time.Minute)},
			want: false,
		},
		{
			name: "inactive",
			link: &domain.DownloadLink{ID: "l3", IsActive: false, ExpiresAt: now.Add(time.Hour)},
			want: false,
		},
		{
			name: "absent",
			link: nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockLinkRepo()
			id := "unknown"
			if tt.link != nil {
				repo.links[tt.link.ID] = tt.link
				id = tt.link.ID
			}
			svc := newTestLinkService(repo, &mockDocRepo{}, &mockStorager{}, nil, now)

			got, err := svc.Validate(context.Background(), id)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Validate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDirectStorage(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	repo.links["l1"] = &domain.DownloadLink{ID: "l1", DocumentID: "doc-1", IsActive: true, ExpiresAt: now.Add(time.Hour)}
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", false)}}
	store := &mockStorager{content: "file-bytes"}
	svc := newTestLinkService(repo, docRepo, store, nil, now)

	res, err := svc.Resolve(context.Background(), "l1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	defer res.Body.Close()

	if res.FileName != "report.pdf" || res.ContentType != "application/pdf" {
		t.Errorf("got %q/%q, want recorded name and type", res.FileName, res.ContentType)
	}
	body, _ := io.ReadAll(res.Body)
	if string(body) != "file-bytes" {
		t.Errorf("body = %q", body)
	}
	if store.getCalls != 1 {
		t.Errorf("store calls = %d, want 1", store.getCalls)
	}
}

func TestResolveCdnSuccess(t *testing.T) {
	var cdnHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdnHits++
		// 传输层设置与记录不同的头，解析结果必须仍取记录值
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("cdn-bytes"))
	}))
	defer server.Close()

	now := time.Now()
	repo := newMockLinkRepo()
	repo.links["l1"] = &domain.DownloadLink{
		ID: "l1", DocumentID: "doc-1", IsActive: true,
		ExpiresAt: now.Add(time.Hour), UseCdn: true, DirectURL: server.URL + "/blob/doc-1.pdf",
	}
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", true)}}
	store := &mockStorager{content: "store-bytes"}
	svc := newTestLinkService(repo, docRepo, store, nil, now)

	res, err := svc.Resolve(context.Background(), "l1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if string(body) != "cdn-bytes" {
		t.Errorf("body = %q, want cdn content", body)
	}
	if res.FileName != "report.pdf" || res.ContentType != "application/pdf" {
		t.Errorf("got %q/%q, want recorded name and type", res.FileName, res.ContentType)
	}
	if cdnHits != 1 {
		t.Errorf("cdn hits = %d, want 1", cdnHits)
	}
	if store.getCalls != 0 {
		t.Errorf("store calls = %d, want 0", store.getCalls)
	}
}

func TestResolveCdnFailureFallsBackOnce(t *testing.T) {
	var cdnHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdnHits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	now := time.Now()
	repo := newMockLinkRepo()
	repo.links["l1"] = &domain.DownloadLink{
		ID: "l1", DocumentID: "doc-1", IsActive: true,
		ExpiresAt: now.Add(time.Hour), UseCdn: true, DirectURL: server.URL + "/blob/doc-1.pdf",
	}
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", true)}}
	store := &mockStorager{content: "store-bytes"}
	svc := newTestLinkService(repo, docRepo, store, nil, now)

	res, err := svc.Resolve(context.Background(), "l1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if string(body) != "store-bytes" {
		t.Errorf("body = %q, want object store content", body)
	}
	if cdnHits != 1 {
		t.Errorf("cdn hits = %d, want exactly one attempt", cdnHits)
	}
	if store.getCalls != 1 {
		t.Errorf("store calls = %d, want exactly one fallback", store.getCalls)
	}
}

func TestResolveSignsRemainingTTLRoundedUp(t *testing.T) {
	now := time.Now()
	repo := newMockLinkRepo()
	// 剩余 90 分钟，应按 2 小时签名
	repo.links["l1"] = &domain.DownloadLink{
		ID: "l1", DocumentID: "doc-1", IsActive: true,
		ExpiresAt: now.Add(90 * time.Minute), UseCdn: true,
	}
	doc := testDoc("doc-1", true)
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": doc}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cdn-bytes"))
	}))
	defer server.Close()

	urlSigner := &stubURLSigner{url: server.URL + "/blob/doc-1.pdf"}
	signer := cdn.NewSigner(&cdn.Config{IsEnabled: true}, urlSigner)
	svc := newTestLinkService(repo, docRepo, &mockStorager{}, signer, now)

	res, err := svc.Resolve(context.Background(), "l1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	res.Body.Close()

	if len(urlSigner.expires) != 1 || urlSigner.expires[0] != 2*time.Hour {
		t.Errorf("signer expiry calls = %v, want one call with 2h", urlSigner.expires)
	}
}

func TestResolveFailures(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		setup func(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager)
	}{
		{
			name:  "unknown link",
			setup: func(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager) {},
		},
		{
			name: "expired link",
			setup: func(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager) {
				repo.links["l1"] = &domain.DownloadLink{ID: "l1", DocumentID: "doc-1", IsActive: true, ExpiresAt: now.Add(-time.Minute)}
				docRepo.docs["doc-1"] = testDoc("doc-1", false)
			},
		},
		{
			name: "inactive link",
			setup: func(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager) {
				repo.links["l1"] = &domain.DownloadLink{ID: "l1", DocumentID: "doc-1", IsActive: false, ExpiresAt: now.Add(time.Hour)}
				docRepo.docs["doc-1"] = testDoc("doc-1", false)
			},
		},
		{
			name: "document removed after issuance",
			setup: func(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager) {
				repo.links["l1"] = &domain.DownloadLink{ID: "l1", DocumentID: "doc-1", IsActive: true, ExpiresAt: now.Add(time.Hour)}
			},
		},
		{
			name: "object store failure",
			setup: func(repo *mockLinkRepo, docRepo *mockDocRepo, store *mockStorager) {
				repo.links["l1"] = &domain.DownloadLink{ID: "l1", DocumentID: "doc-1", IsActive: true, ExpiresAt: now.Add(time.Hour)}
				docRepo.docs["doc-1"] = testDoc("doc-1", false)
				store.getErr = errors.New("bucket unreachable")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockLinkRepo()
			docRepo := &mockDocRepo{docs: map[string]*domain.Document{}}
			store := &mockStorager{content: "x"}
			tt.setup(repo, docRepo, store)
			svc := newTestLinkService(repo, docRepo, store, nil, now)

			res, err := svc.Resolve(context.Background(), "l1")
			if res != nil {
				t.Error("expected nil result")
			}
			if !errors.Is(err, code.ErrorLinkInvalidOrExpired) {
				t.Errorf("got %v, want ErrorLinkInvalidOrExpired", err)
			}
		})
	}
}

func TestLinkLifecycleScenario(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo := newMockLinkRepo()
	docRepo := &mockDocRepo{docs: map[string]*domain.Document{"doc-1": testDoc("doc-1", false)}}
	store := &mockStorager{content: "file-bytes"}

	clock := t0
	svc := &linkService{
		repo:       repo,
		docRepo:    docRepo,
		store:      store,
		logger:     zap.NewNop(),
		httpClient: &http.Client{Timeout: time.Second},
		nowFunc:    func() time.Time { return clock },
	}

	link, err := svc.Generate(context.Background(), "doc-1", time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	clock = t0.Add(30 * time.Minute)
	if ok, _ := svc.Validate(context.Background(), link.ID); !ok {
		t.Error("link should be valid 30m after issuance")
	}
	if _, err := svc.Resolve(context.Background(), link.ID); err != nil {
		t.Errorf("Resolve at 30m failed: %v", err)
	}

	clock = t0.Add(90 * time.Minute)
	if ok, _ := svc.Validate(context.Background(), link.ID); ok {
		t.Error("link should be invalid 90m after issuance")
	}
	if _, err := svc.Resolve(context.Background(), link.ID); !errors.Is(err, code.ErrorLinkInvalidOrExpired) {
		t.Errorf("Resolve at 90m: got %v, want ErrorLinkInvalidOrExpired", err)
	}
}
