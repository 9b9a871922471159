package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository/repotest"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

func newAuthService(t *testing.T) (*AuthService, *repotest.Sessions, *entity.User) {
	t.Helper()
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	u := entity.User{ID: "u1", Name: "Admin User", Email: "admin@example.com", Password: hash, Role: entity.RoleAdmin}
	sessions := repotest.NewSessions()
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return NewAuthService(repotest.NewUsers(u), sessions, jwt, testLogger), sessions, &u
}

func TestAuthService_Login(t *testing.T) {
	s, sessions, u := newAuthService(t)
	ctx := context.Background()

	sess, pair, err := s.Login(ctx, LoginInput{Email: "ADMIN@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, u.ID, sess.UserID)
	require.Equal(t, entity.RoleAdmin, sess.Role)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, time.Hour, sessions.TTLs[u.ID])

	stored, err := sessions.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, sess.SID, stored.SID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := s.Login(ctx, LoginInput{Email: "admin@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(ctx, LoginInput{Email: "not-an-email", Password: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "email")
	require.Contains(t, verr.Fields, "password")
}

func TestAuthService_ResolveAndLogout(t *testing.T) {
	s, _, u := newAuthService(t)
	ctx := context.Background()

	_, pair, err := s.Login(ctx, LoginInput{Email: u.Email, Password: "password123"})
	require.NoError(t, err)

	sess, err := s.Resolve(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.Name, sess.Name)

	_, err = s.Resolve(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized, "refresh token is not an access token")

	_, err = s.Resolve(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, s.Logout(ctx, u.ID))
	_, err = s.Resolve(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_NewLoginRevokesOldTokens(t *testing.T) {
	s, _, u := newAuthService(t)
	ctx := context.Background()

	_, first, err := s.Login(ctx, LoginInput{Email: u.Email, Password: "password123"})
	require.NoError(t, err)
	_, second, err := s.Login(ctx, LoginInput{Email: u.Email, Password: "password123"})
	require.NoError(t, err)

	_, err = s.Resolve(ctx, first.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.Resolve(ctx, second.AccessToken)
	require.NoError(t, err)
}

func TestAuthService_Refresh(t *testing.T) {
	s, _, u := newAuthService(t)
	ctx := context.Background()

	old, pair, err := s.Login(ctx, LoginInput{Email: u.Email, Password: "password123"})
	require.NoError(t, err)

	sess, rotated, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, old.SID, sess.SID)

	_, err = s.Resolve(ctx, rotated.AccessToken)
	require.NoError(t, err)

	_, _, err = s.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized, "a rotated refresh token is single use")

	_, _, err = s.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_ConcurrentRefreshSucceedsOnce(t *testing.T) {
	s, _, u := newAuthService(t)
	ctx := context.Background()

	_, pair, err := s.Login(ctx, LoginInput{Email: u.Email, Password: "password123"})
	require.NoError(t, err)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = s.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, ErrUnauthorized)
	}
	require.Equal(t, 1, ok)
}

func TestAuthService_RefreshAfterLogout(t *testing.T) {
	s, _, u := newAuthService(t)
	ctx := context.Background()

	_, pair, err := s.Login(ctx, LoginInput{Email: u.Email, Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, u.ID))

	_, _, err = s.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}
