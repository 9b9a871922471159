package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithCoverImage(url string) Option { return func(d *EmailData) { d.CoverImage = url } }

func WithAuthor(name string) Option { return func(d *EmailData) { d.AuthorName = name } }

// ArticleURL joins the public site URL and the article path.
func ArticleURL(siteURL, id string) string {
	return strings.TrimRight(siteURL, "/") + "/articles/" + id
}

// NewArticlePublishedData fills the data for the article_published template.
func NewArticlePublishedData(appName, siteURL, recipient, articleID, title, description string, opts ...Option) map[string]any {
	d := EmailData{
		Type:               ArticlePublished,
		RecipientEmail:     recipient,
		AppName:            appName,
		SiteURL:            siteURL,
		ArticleID:          articleID,
		ArticleTitle:       title,
		ArticleDescription: description,
		ArticleURL:         ArticleURL(siteURL, articleID),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
