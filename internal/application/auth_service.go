package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type AuthService struct {
	Users    repo.UserRepository
	Sessions repo.SessionRepository
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, JWT: jwt, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials and opens a new session, replacing any previous one.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*entity.Session, TokenPair, error) {
	if err := validate(in); err != nil {
		return nil, TokenPair{}, err
	}
	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	return s.issue(u, func(sess *entity.Session) error {
		return s.Sessions.Save(ctx, sess, s.JWT.RefreshTTL)
	})
}

// Refresh validates a refresh token against the stored session and rotates
// both tokens. The swap is conditional on the token's sid, so a refresh token
// is accepted at most once even under concurrent use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.Session, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrUnauthorized
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrUnauthorized
		}
		return nil, TokenPair{}, err
	}
	sess, pair, err := s.issue(u, func(sess *entity.Session) error {
		return s.Sessions.Rotate(ctx, claims.SessionID, sess, s.JWT.RefreshTTL)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, ErrUnauthorized
	}
	return sess, pair, err
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.Sessions.Delete(ctx, userID)
}

// Resolve maps an access token to its live session.
func (s *AuthService) Resolve(ctx context.Context, accessToken string) (*entity.Session, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.currentSession(ctx, claims)
}

func (s *AuthService) currentSession(ctx context.Context, claims *helpers.Claims) (*entity.Session, error) {
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if sess.SID != claims.SessionID {
		return nil, ErrUnauthorized
	}
	return sess, nil
}

// issue mints a session with fresh tokens and persists it through store.
func (s *AuthService) issue(u *entity.User, store func(*entity.Session) error) (*entity.Session, TokenPair, error) {
	sess := &entity.Session{
		SID:       uuid.NewString(),
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Role:      u.Role,
		CreatedAt: time.Now().UTC(),
	}
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sess.SID, string(u.Role))
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sess.SID, string(u.Role))
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return nil, TokenPair{}, err
	}
	if err := store(sess); err != nil {
		return nil, TokenPair{}, err
	}
	return sess, TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
