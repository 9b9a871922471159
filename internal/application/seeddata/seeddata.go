// Package seeddata embeds the fixture articles used to populate an empty database.
package seeddata

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

//go:embed articles.yaml
var articlesYAML []byte

type article struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Content     string `yaml:"content"`
	CoverImage  string `yaml:"coverImage"`
	Date        string `yaml:"date"`
	Author      struct {
		Name  string `yaml:"name"`
		Image string `yaml:"image"`
	} `yaml:"author"`
	Published bool `yaml:"published"`
}

// Articles parses the embedded fixtures. Each call returns fresh values.
func Articles() ([]entity.Article, error) {
	return parse(articlesYAML)
}

func parse(b []byte) ([]entity.Article, error) {
	var raw []article
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse seed articles: %w", err)
	}
	out := make([]entity.Article, 0, len(raw))
	for i, r := range raw {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, fmt.Errorf("seed article %d: %w", i, err)
		}
		img := r.Author.Image
		if img == "" {
			img = entity.DefaultAuthorImage
		}
		out = append(out, entity.Article{
			Title:       r.Title,
			Description: r.Description,
			Content:     r.Content,
			CoverImage:  r.CoverImage,
			Date:        d,
			Author:      entity.Author{Name: r.Author.Name, Image: img},
			Published:   r.Published,
		})
	}
	return out, nil
}
