package application

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/storage"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeIndexer struct {
	mu        sync.Mutex
	indexed   []string
	removed   []string
	searchOut []entity.Article
	searchErr error
	indexErr  error
	lastQuery struct {
		q             string
		publishedOnly bool
		size          int
	}
}

func (f *fakeIndexer) Index(_ context.Context, a *entity.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = append(f.indexed, a.ID)
	return f.indexErr
}

func (f *fakeIndexer) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndexer) Search(_ context.Context, q string, publishedOnly bool, size int) ([]entity.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery.q, f.lastQuery.publishedOnly, f.lastQuery.size = q, publishedOnly, size
	return f.searchOut, f.searchErr
}

type fakeNotifier struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (f *fakeNotifier) ArticlePublished(_ context.Context, a *entity.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, a.ID)
	return f.err
}

type fakeBackend struct {
	got storage.Object
	err error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Put(_ context.Context, obj storage.Object) (storage.Stored, error) {
	f.got = obj
	if f.err != nil {
		return storage.Stored{}, f.err
	}
	return storage.Stored{URL: "/uploads/" + obj.Name, Backend: storage.BackendLocal}, nil
}

func adminSession() *entity.Session {
	return &entity.Session{SID: "s1", UserID: "u1", Name: "Admin User", Image: "/a.jpg", Role: entity.RoleAdmin}
}

func ptr[T any](v T) *T { return &v }

var testLogger = helpers.NewTestLogger()
