package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type ArticleRepository struct {
	db DB
}

func NewArticleRepository(db DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `id, title, description, content, cover_image, date, author, published, created_at, updated_at`

func (r *ArticleRepository) List(ctx context.Context, f repository.ArticleFilter) ([]entity.Article, error) {
	where, args := filterClause(f, nil)
	rows, err := r.db.Query(ctx, `SELECT `+articleColumns+` FROM articles`+where+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return collectArticles(rows)
}

func (r *ArticleRepository) Search(ctx context.Context, q string, f repository.ArticleFilter, limit int) ([]entity.Article, error) {
	args := []any{"%" + escapeLike(q) + "%"}
	where, args := filterClause(f, args)
	cond := `(title ILIKE $1 OR description ILIKE $1 OR content ILIKE $1)`
	if where == "" {
		where = " WHERE " + cond
	} else {
		where += " AND " + cond
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM articles%s ORDER BY date DESC LIMIT $%d`, articleColumns, where, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return collectArticles(rows)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	key, ok := canonicalID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	a, err := scanArticle(r.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO articles (title, description, content, cover_image, date, author, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Description, a.Content, a.CoverImage, a.Date, a.Author, a.Published)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	key, ok := canonicalID(a.ID)
	if !ok {
		return repository.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `
		UPDATE articles
		SET title = $1, description = $2, content = $3, cover_image = $4,
		    date = $5, author = $6, published = $7, updated_at = now()
		WHERE id = $8
		RETURNING created_at, updated_at
	`, a.Title, a.Description, a.Content, a.CoverImage, a.Date, a.Author, a.Published, key)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	key, ok := canonicalID(id)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

func filterClause(f repository.ArticleFilter, args []any) (string, []any) {
	if f.Published == nil {
		return "", args
	}
	args = append(args, *f.Published)
	return fmt.Sprintf(" WHERE published = $%d", len(args)), args
}

// canonicalID reports whether id is a UUID and returns its canonical
// hyphenated form. uuid.Parse also accepts urn and brace forms that the
// uuid column type rejects.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func scanArticle(row pgx.Row) (entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Content, &a.CoverImage,
		&a.Date, &a.Author, &a.Published, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func collectArticles(rows pgx.Rows) ([]entity.Article, error) {
	defer rows.Close()
	out := make([]entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return out, nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
