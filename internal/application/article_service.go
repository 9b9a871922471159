package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/policy"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

const (
	defaultAuthorName  = "Admin"
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// ArticleIndexer mirrors articles into a full-text index.
type ArticleIndexer interface {
	Index(ctx context.Context, a *entity.Article) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, publishedOnly bool, size int) ([]entity.Article, error)
}

// ArticleNotifier is told when an article goes live.
type ArticleNotifier interface {
	ArticlePublished(ctx context.Context, a *entity.Article) error
}

type ArticleService struct {
	Repo     repo.ArticleRepository
	Indexer  ArticleIndexer  // optional
	Notifier ArticleNotifier // optional
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewArticleService(r repo.ArticleRepository, indexer ArticleIndexer, notifier ArticleNotifier, logger *logrus.Logger) *ArticleService {
	return &ArticleService{Repo: r, Indexer: indexer, Notifier: notifier, Logger: logger, now: time.Now}
}

// Date accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

type AuthorInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// ArticleInput is the body of POST /articles and PUT /articles/:id.
type ArticleInput struct {
	Title       string       `json:"title" binding:"required,max=100"`
	Description string       `json:"description" binding:"required,max=500"`
	Content     string       `json:"content" binding:"required"`
	CoverImage  string       `json:"coverImage" binding:"required"`
	Date        *Date        `json:"date"`
	Author      *AuthorInput `json:"author" binding:"omitempty"`
	Published   *bool        `json:"published"`
}

func roleOf(s *entity.Session) entity.Role {
	if s == nil {
		return ""
	}
	return s.Role
}

// List returns articles newest first. published is the raw ?published= value.
func (s *ArticleService) List(ctx context.Context, caller *entity.Session, published string) ([]entity.Article, error) {
	return s.Repo.List(ctx, policy.ListFilter(roleOf(caller), published))
}

// Get hides drafts from callers who may not see them behind ErrArticleNotFound.
func (s *ArticleService) Get(ctx context.Context, caller *entity.Session, id string) (*entity.Article, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if !policy.CanViewArticle(roleOf(caller), a) {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

func (s *ArticleService) Create(ctx context.Context, caller *entity.Session, in ArticleInput) (*entity.Article, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	a := &entity.Article{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		CoverImage:  in.CoverImage,
		Date:        s.now().UTC(),
		Author:      s.defaultAuthor(caller),
	}
	if in.Date != nil && !in.Date.IsZero() {
		a.Date = in.Date.UTC()
	}
	if in.Author != nil {
		a.Author = authorFrom(in.Author)
	}
	if in.Published != nil {
		a.Published = *in.Published
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.afterSave(ctx, a, false)
	return a, nil
}

// Update replaces the editable fields of an existing article. Author, date
// and published keep their stored values unless supplied.
func (s *ArticleService) Update(ctx context.Context, caller *entity.Session, id string, in ArticleInput) (*entity.Article, error) {
	if !policy.CanModifyArticles(roleOf(caller)) {
		return nil, ErrUnauthorized
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	wasPublished := a.Published

	a.Title = in.Title
	a.Description = in.Description
	a.Content = in.Content
	a.CoverImage = in.CoverImage
	if in.Published != nil {
		a.Published = *in.Published
	}
	if in.Date != nil && !in.Date.IsZero() {
		a.Date = in.Date.UTC()
	}
	if in.Author != nil {
		a.Author = authorFrom(in.Author)
	}

	if err := s.Repo.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	s.afterSave(ctx, a, wasPublished)
	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, caller *entity.Session, id string) error {
	if !policy.CanModifyArticles(roleOf(caller)) {
		return ErrUnauthorized
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if s.Indexer != nil {
		if err := s.Indexer.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("article_id", id).Warn("search index delete failed")
		}
	}
	return nil
}

// Search prefers the full-text index and falls back to a database scan.
func (s *ArticleService) Search(ctx context.Context, caller *entity.Session, q string, limit int) ([]entity.Article, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, &ValidationError{Fields: map[string]string{"q": "is required"}}
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}
	role := roleOf(caller)

	if s.Indexer != nil {
		out, err := s.Indexer.Search(ctx, q, !policy.IsPrivileged(role), limit)
		if err == nil {
			return out, nil
		}
		s.Logger.WithError(err).Warn("search index query failed, falling back to database")
	}
	return s.Repo.Search(ctx, q, policy.ListFilter(role, ""), limit)
}

func (s *ArticleService) defaultAuthor(caller *entity.Session) entity.Author {
	if caller != nil && caller.Name != "" {
		u := entity.User{Name: caller.Name, Image: caller.Image}
		return u.AsAuthor()
	}
	return entity.Author{Name: defaultAuthorName, Image: entity.DefaultAuthorImage}
}

func authorFrom(in *AuthorInput) entity.Author {
	img := in.Image
	if img == "" {
		img = entity.DefaultAuthorImage
	}
	return entity.Author{Name: in.Name, Image: img}
}

// afterSave runs the best-effort side effects of a write. Failures are logged only.
func (s *ArticleService) afterSave(ctx context.Context, a *entity.Article, wasPublished bool) {
	log := s.Logger.WithField("article_id", a.ID)
	if s.Indexer != nil {
		if err := s.Indexer.Index(ctx, a); err != nil {
			log.WithError(err).Warn("search index update failed")
		}
	}
	if s.Notifier != nil && a.Published && !wasPublished {
		if err := s.Notifier.ArticlePublished(ctx, a); err != nil {
			log.WithError(err).Warn("publish notification failed")
		}
	}
}
