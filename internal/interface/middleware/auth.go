package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/policy"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
)

// SessionResolver maps an access token to a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, accessToken string) (*entity.Session, error)
}

// Authenticate attaches the caller's session to the context when the request
// carries a valid access token. Anonymous requests pass through untouched;
// use RequirePrivileged to reject them.
func Authenticate(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.AccessToken(c)
		if token == "" {
			c.Next()
			return
		}
		sess, err := auth.Resolve(c.Request.Context(), token)
		if err == nil {
			c.Set(CtxSessionKey, sess)
			c.Set(CtxUserIDKey, sess.UserID)
		}
		c.Next()
	}
}

// RequirePrivileged aborts with 401 unless Authenticate found an admin or author session.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess == nil || !policy.IsPrivileged(sess.Role) {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session set by Authenticate, or nil.
func SessionFrom(c *gin.Context) *entity.Session {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*entity.Session)
	return sess
}
