// Package repotest holds in-memory repositories for unit tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

// Articles is a map-backed ArticleRepository. Err, when set, is returned by every call.
type Articles struct {
	mu   sync.Mutex
	rows map[string]entity.Article
	Err  error
}

func NewArticles(seed ...entity.Article) *Articles {
	r := &Articles{rows: map[string]entity.Article{}}
	for _, a := range seed {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		r.rows[a.ID] = a
	}
	return r
}

func (r *Articles) List(_ context.Context, f repository.ArticleFilter) ([]entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.filter(func(a entity.Article) bool { return matches(a, f) }, 0), nil
}

func (r *Articles) GetByID(_ context.Context, id string) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	a, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *Articles) Create(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now
	r.rows[a.ID] = *a
	return nil
}

func (r *Articles) Update(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[a.ID]; !ok {
		return repository.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	r.rows[a.ID] = *a
	return nil
}

func (r *Articles) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Articles) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.rows)), nil
}

func (r *Articles) Search(_ context.Context, q string, f repository.ArticleFilter, limit int) ([]entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	q = strings.ToLower(q)
	return r.filter(func(a entity.Article) bool {
		if !matches(a, f) {
			return false
		}
		return strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Description), q) ||
			strings.Contains(strings.ToLower(a.Content), q)
	}, limit), nil
}

// Len returns the number of stored rows.
func (r *Articles) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *Articles) filter(keep func(entity.Article) bool, limit int) []entity.Article {
	out := make([]entity.Article, 0, len(r.rows))
	for _, a := range r.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func matches(a entity.Article, f repository.ArticleFilter) bool {
	return f.Published == nil || a.Published == *f.Published
}

// Users is a map-backed UserRepository keyed by id.
type Users struct {
	mu   sync.Mutex
	rows map[string]entity.User
	Err  error
}

func NewUsers(seed ...entity.User) *Users {
	r := &Users{rows: map[string]entity.User{}}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		r.rows[u.ID] = u
	}
	return r
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	r.rows[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Len returns the number of stored users.
func (r *Users) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// Sessions is a map-backed SessionRepository. TTLs are recorded but not enforced.
type Sessions struct {
	mu   sync.Mutex
	rows map[string]entity.Session
	TTLs map[string]time.Duration
}

func NewSessions() *Sessions {
	return &Sessions{rows: map[string]entity.Session{}, TTLs: map[string]time.Duration{}}
}

func (r *Sessions) Save(_ context.Context, s *entity.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.UserID] = *s
	r.TTLs[s.UserID] = ttl
	return nil
}

func (r *Sessions) Rotate(_ context.Context, oldSID string, s *entity.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[s.UserID]
	if !ok || cur.SID != oldSID {
		return repository.ErrNotFound
	}
	r.rows[s.UserID] = *s
	r.TTLs[s.UserID] = ttl
	return nil
}

func (r *Sessions) Get(_ context.Context, userID string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *Sessions) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, userID)
	return nil
}

var (
	_ repository.ArticleRepository = (*Articles)(nil)
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.SessionRepository = (*Sessions)(nil)
)
