package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application/seeddata"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const seedMessage = "Database seeded successfully"

// SeedAdmin is the account created on first seed.
type SeedAdmin struct {
	Email    string
	Password string
	Name     string
}

type SeedService struct {
	Users    repo.UserRepository
	Articles repo.ArticleRepository
	Indexer  ArticleIndexer // optional
	Admin    SeedAdmin
	Logger   *logrus.Logger
}

func NewSeedService(users repo.UserRepository, articles repo.ArticleRepository, indexer ArticleIndexer, admin SeedAdmin, logger *logrus.Logger) *SeedService {
	return &SeedService{Users: users, Articles: articles, Indexer: indexer, Admin: admin, Logger: logger}
}

type SeedResult struct {
	Message        string `json:"message"`
	AdminEmail     string `json:"adminEmail"`
	UserCreated    bool   `json:"userCreated"`
	ArticlesSeeded int    `json:"articlesSeeded"`
}

// Seed creates the admin user if missing and inserts the fixture articles
// into an empty table. Running it again changes nothing.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	created, err := s.ensureAdmin(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.seedArticles(ctx)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"admin_email":     s.Admin.Email,
		"user_created":    created,
		"articles_seeded": n,
	}).Info("seed completed")

	return &SeedResult{
		Message:        seedMessage,
		AdminEmail:     s.Admin.Email,
		UserCreated:    created,
		ArticlesSeeded: n,
	}, nil
}

func (s *SeedService) ensureAdmin(ctx context.Context) (bool, error) {
	_, err := s.Users.GetByEmail(ctx, s.Admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hash, err := helpers.HashPassword(s.Admin.Password)
	if err != nil {
		return false, err
	}
	u := &entity.User{
		Name:     s.Admin.Name,
		Email:    s.Admin.Email,
		Password: hash,
		Image:    entity.DefaultAuthorImage,
		Role:     entity.RoleAdmin,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost a race with a concurrent seed
		if errors.Is(err, repo.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *SeedService) seedArticles(ctx context.Context) (int, error) {
	count, err := s.Articles.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	fixtures, err := seeddata.Articles()
	if err != nil {
		return 0, err
	}
	for i := range fixtures {
		a := &fixtures[i]
		if err := s.Articles.Create(ctx, a); err != nil {
			return i, err
		}
		if s.Indexer != nil {
			if err := s.Indexer.Index(ctx, a); err != nil {
				s.Logger.WithError(err).WithField("article_id", a.ID).Warn("search index update failed")
			}
		}
	}
	return len(fixtures), nil
}
