package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

type ArticleHandler struct {
	Svc    *application.ArticleService
	Logger *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Svc: svc, Logger: logger}
}

type articleResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	CoverImage  string        `json:"coverImage"`
	Date        time.Time     `json:"date"`
	Author      entity.Author `json:"author"`
	Published   bool          `json:"published"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func toArticleResponse(a *entity.Article) articleResponse {
	return articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		CoverImage:  a.CoverImage,
		Date:        a.Date,
		Author:      a.Author,
		Published:   a.Published,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toArticleList(list []entity.Article) []articleResponse {
	out := make([]articleResponse, len(list))
	for i := range list {
		out[i] = toArticleResponse(&list[i])
	}
	return out
}

func (h *ArticleHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.SessionFrom(c), c.Query("published"))
	if err != nil {
		h.Logger.WithError(err).Error("list articles failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to fetch articles", nil)
		return
	}
	response.Success(c, http.StatusOK, toArticleList(list), "articles", map[string]any{"count": len(list)})
}

func (h *ArticleHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch article")
		return
	}
	response.Success(c, http.StatusOK, toArticleResponse(a), "article", nil)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var in application.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		h.fail(c, err, "failed to create article")
		return
	}
	articlesCreated.Add(1)
	response.Success(c, http.StatusCreated, toArticleResponse(a), "article created", nil)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var in application.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), in)
	if err != nil {
		h.fail(c, err, "failed to update article")
		return
	}
	articlesUpdated.Add(1)
	response.Success(c, http.StatusOK, toArticleResponse(a), "article updated", nil)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete article")
		return
	}
	articlesDeleted.Add(1)
	response.Success[any](c, http.StatusOK, nil, "article deleted successfully", nil)
}

// Search handles GET /articles/search?q=...&limit=...
func (h *ArticleHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.Svc.Search(c.Request.Context(), middleware.SessionFrom(c), c.Query("q"), limit)
	if err != nil {
		h.fail(c, err, "failed to search articles")
		return
	}
	response.Success(c, http.StatusOK, toArticleList(list), "articles", map[string]any{"count": len(list)})
}

// fail maps service errors to statuses; anything unknown is a 500 with msg.
func (h *ArticleHandler) fail(c *gin.Context, err error, msg string) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Fields)
	case errors.Is(err, application.ErrArticleNotFound):
		response.Error[any](c, http.StatusNotFound, "article not found", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	default:
		h.Logger.WithError(err).WithField("article_id", c.Param("id")).Error(msg)
		response.Error[any](c, http.StatusInternalServerError, msg, nil)
	}
}
