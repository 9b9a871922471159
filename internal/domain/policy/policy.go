// Package policy is the one place where session roles are turned into
// permissions on articles.
package policy

import (
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

// IsPrivileged reports whether role may see drafts and change articles.
// An empty role means an anonymous caller.
func IsPrivileged(role entity.Role) bool {
	return role.Valid()
}

// CanViewArticle hides drafts from non-privileged callers.
func CanViewArticle(role entity.Role, a *entity.Article) bool {
	if a == nil {
		return false
	}
	return a.Published || IsPrivileged(role)
}

// CanModifyArticles gates update and delete.
func CanModifyArticles(role entity.Role) bool {
	return IsPrivileged(role)
}

// ListFilter turns the ?published= query value into a repository filter.
// Privileged callers get "true"/"false" filtering and everything else
// (empty, "all", garbage) lists all articles. Anyone else only ever sees
// published ones.
func ListFilter(role entity.Role, published string) repository.ArticleFilter {
	if !IsPrivileged(role) {
		return repository.ArticleFilter{Published: boolPtr(true)}
	}
	switch published {
	case "true":
		return repository.ArticleFilter{Published: boolPtr(true)}
	case "false":
		return repository.ArticleFilter{Published: boolPtr(false)}
	default:
		return repository.ArticleFilter{}
	}
}

func boolPtr(b bool) *bool { return &b }
