package modules

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository/repotest"
	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type pinger struct{ err error }

func (p *pinger) Ping(context.Context) error { return p.err }

type staticResolver map[string]*entity.Session

func (r staticResolver) Resolve(_ context.Context, tok string) (*entity.Session, error) {
	if s, ok := r[tok]; ok {
		return s, nil
	}
	return nil, application.ErrUnauthorized
}

func articleEngine(t *testing.T, db *pinger, protect bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := helpers.NewTestLogger()
	svc := application.NewArticleService(repotest.NewArticles(
		entity.Article{ID: "a1", Title: "T", Description: "D", Content: "C", CoverImage: "/x.jpg", Published: true, Date: time.Now()},
	), nil, nil, logger)

	r := gin.New()
	api := r.Group("/api", middleware.Authenticate(staticResolver{"author": {UserID: "u1", Role: entity.RoleAuthor}}))
	NewArticleModule(handlers.NewArticleHandler(svc, logger), db, logger, protect).Register(api)
	return r
}

func call(r *gin.Engine, method, path, body, token string) int {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestArticleModuleRoutes(t *testing.T) {
	r := articleEngine(t, &pinger{}, false)
	body := `{"title":"T2","description":"D","content":"C","coverImage":"/x.jpg"}`

	require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/articles", "", ""))
	require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/articles/a1", "", ""))
	require.Equal(t, http.StatusBadRequest, call(r, http.MethodGet, "/api/articles/search", "", ""))
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/api/articles", body, ""))
	require.Equal(t, http.StatusUnauthorized, call(r, http.MethodPut, "/api/articles/a1", body, ""))
	require.Equal(t, http.StatusOK, call(r, http.MethodPut, "/api/articles/a1", body, "author"))
	require.Equal(t, http.StatusUnauthorized, call(r, http.MethodDelete, "/api/articles/a1", "", ""))
	require.Equal(t, http.StatusOK, call(r, http.MethodDelete, "/api/articles/a1", "", "author"))
}

func TestArticleModuleProtectedWrites(t *testing.T) {
	r := articleEngine(t, &pinger{}, true)
	body := `{"title":"T2","description":"D","content":"C","coverImage":"/x.jpg"}`

	require.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/api/articles", body, ""))
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/api/articles", body, "author"))
}

func TestArticleModuleDatabaseDown(t *testing.T) {
	r := articleEngine(t, &pinger{err: errors.New("refused")}, false)
	require.Equal(t, http.StatusInternalServerError, call(r, http.MethodGet, "/api/articles", "", ""))
}

func TestAuthModuleWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := helpers.NewTestLogger()
	auth := application.NewAuthService(repotest.NewUsers(), repotest.NewSessions(),
		helpers.NewJWTManager("a", "r", time.Minute, time.Hour), logger)

	r := gin.New()
	NewAuthModule(handlers.NewAuthHandler(auth, helpers.NewCookie("", false), logger), Limits{Login: 1, Window: time.Minute}).
		Register(r.Group("/api"))

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`, ""))
	}
	require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/auth/session", "", ""))
}

func TestDebugModuleServesCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDebugModule(nil, helpers.NewTestLogger()).Register(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"blog"`)
	require.Contains(t, w.Body.String(), `"articles_created"`)
}
