package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type sessionUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Image string      `json:"image"`
	Role  entity.Role `json:"role"`
}

func toSessionUser(s *entity.Session) *sessionUser {
	if s == nil {
		return nil
	}
	return &sessionUser{ID: s.UserID, Name: s.Name, Email: s.Email, Image: s.Image, Role: s.Role}
}

func expiryMeta(pair application.TokenPair) map[string]any {
	return map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, pair, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Fields)
		case errors.Is(err, application.ErrInvalidCredentials):
			loginsFailed.Add(1)
			h.Logger.WithField("ip", c.GetString(middleware.CtxRealIPKey)).Info("login rejected")
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to sign in", nil)
		}
		return
	}
	loginsOK.Add(1)
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, toSessionUser(sess), "login successful", expiryMeta(pair))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	sess, pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		if !errors.Is(err, application.ErrUnauthorized) {
			h.Logger.WithError(err).Error("refresh failed")
		}
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, toSessionUser(sess), "token refreshed", expiryMeta(pair))
}

// Logout drops the server-side session, if any, and always clears the cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.SessionFrom(c); sess != nil {
		if err := h.Svc.Logout(c.Request.Context(), sess.UserID); err != nil {
			h.Logger.WithError(err).WithField("user_id", sess.UserID).Error("logout failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to sign out", nil)
			return
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// Session reports the signed-in user; data is omitted for anonymous callers.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		response.Success[*sessionUser](c, http.StatusOK, nil, "no active session", nil)
		return
	}
	response.Success(c, http.StatusOK, toSessionUser(sess), "active session", nil)
}
