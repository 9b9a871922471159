package middleware

import (
	"net"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/internal/domain/policy"
)

// AllowPrivateIP bypasses the limiter for loopback and RFC 1918 clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowPrivileged bypasses the limiter for admin and author sessions.
func AllowPrivileged() AllowFunc {
	return func(c *gin.Context) bool {
		sess := SessionFrom(c)
		return sess != nil && policy.IsPrivileged(sess.Role)
	}
}

// AnyAllow combines bypass rules; nil entries are skipped.
func AnyAllow(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
