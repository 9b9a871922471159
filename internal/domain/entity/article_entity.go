package entity

import "time"

const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Author is a denormalized copy of the writer, stored with the article.
type Author struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Article is the aggregate root for blog posts.
type Article struct {
	ID          string
	Title       string
	Description string
	Content     string
	CoverImage  string
	Date        time.Time
	Author      Author
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
