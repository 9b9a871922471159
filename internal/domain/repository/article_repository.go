package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// ArticleFilter narrows List. A nil Published returns every article.
type ArticleFilter struct {
	Published *bool
}

// ArticleRepository persists articles. Lists are ordered by date, newest first.
type ArticleRepository interface {
	List(ctx context.Context, f ArticleFilter) ([]entity.Article, error)
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	Create(ctx context.Context, a *entity.Article) error
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Search does a case-insensitive substring match on title, description and content.
	Search(ctx context.Context, q string, f ArticleFilter, limit int) ([]entity.Article, error)
}
