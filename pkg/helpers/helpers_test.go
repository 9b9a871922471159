package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSafeFilename(t *testing.T) {
	tests := map[string]string{
		"my cover.png":         "my-cover.png",
		"a  b\tc.jpg":          "a-b-c.jpg",
		"héllo wörld!.svg":     "hllo-wrld.svg",
		"../../etc/passwd":     "....etcpasswd",
		"":                     DefaultUploadName,
		"***":                  DefaultUploadName,
		"..":                   DefaultUploadName,
		"already-safe.v2.jpeg": "already-safe.v2.jpeg",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, SafeFilename(in))
		})
	}
}

func TestStoredFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tests := []struct {
		original, ext, want string
	}{
		{"my cover.png", ".png", "1700000000123-my-cover.png"},
		{"evil.html", ".png", "1700000000123-evil.png"},
		{"photo.JPEG", ".jpg", "1700000000123-photo.jpg"},
		{"archive.tar.gz", ".svg", "1700000000123-archive.tar.svg"},
		{"", ".png", "1700000000123-image.png"},
		{".png", ".png", "1700000000123-image.png"},
		{"../../etc/passwd", ".png", "1700000000123-image.png"},
		{"my cover.png", "", "1700000000123-my-cover.png"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, StoredFilename(now, tt.original, tt.ext), tt.original)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)
	require.True(t, CompareHashAndPassword(hash, "password123"))
	require.False(t, CompareHashAndPassword(hash, "password124"))
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	tok, exp, err := m.GenerateAccessToken("u1", "s1", "admin")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "s1", claims.SessionID)
	require.Equal(t, "admin", claims.Role)

	_, err = m.ParseRefreshToken(tok)
	require.Error(t, err, "access token must not validate with the refresh secret")

	expired := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	tok, _, err = expired.GenerateAccessToken("u1", "s1", "admin")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	read := func(setup func(r *http.Request)) string {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		setup(c.Request)
		return AccessToken(c)
	}

	require.Equal(t, "", read(func(*http.Request) {}))
	require.Equal(t, "cookie-tok", read(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessCookie, Value: "cookie-tok"})
		r.Header.Set("Authorization", "Bearer header-tok")
	}))
	require.Equal(t, "header-tok", read(func(r *http.Request) {
		r.Header.Set("Authorization", "bearer header-tok")
	}))
	require.Equal(t, "", read(func(r *http.Request) {
		r.Header.Set("Authorization", "Basic abc")
	}))
}

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	NewCookie("localhost", false).SetPair(c, "a", time.Now().Add(time.Hour), "r", time.Now().Add(2*time.Hour))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		require.True(t, ck.HttpOnly)
		require.Greater(t, ck.MaxAge, 0)
	}
}

func TestObjectURL(t *testing.T) {
	require.Equal(t, "https://storage.googleapis.com/blog-assets/uploads/1700000000123-cover.png",
		ObjectURL("blog-assets", "uploads/1700000000123-cover.png"))
	require.Equal(t, "https://storage.googleapis.com/b/a%20b/c%3Fd.png", ObjectURL("b", "/a b/c?d.png"))
}
