package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ArticleIndex keeps a denormalized copy of every article in Elasticsearch.
type ArticleIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewArticleIndex(es *elasticsearch.Client, index string) *ArticleIndex {
	return &ArticleIndex{es: es, index: index}
}

type articleDoc struct {
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

func toDoc(a *entity.Article) articleDoc {
	return articleDoc{
		ID: a.ID, Title: a.Title, Description: a.Description, Content: a.Content,
		CoverImage: a.CoverImage, Date: a.Date, Author: a.Author, Published: a.Published,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func (d articleDoc) article() entity.Article {
	return entity.Article{
		ID: d.ID, Title: d.Title, Description: d.Description, Content: d.Content,
		CoverImage: d.CoverImage, Date: d.Date, Author: d.Author, Published: d.Published,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func (i *ArticleIndex) Index(ctx context.Context, a *entity.Article) error {
	b, err := json.Marshal(toDoc(a))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.index, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (i *ArticleIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over title, description and content.
func (i *ArticleIndex) Search(ctx context.Context, q string, publishedOnly bool, size int) ([]entity.Article, error) {
	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "description^2", "content"},
			},
		},
	}
	if publishedOnly {
		boolQuery["filter"] = []any{map[string]any{"term": map[string]any{"published": true}}}
	}
	query := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"size":  size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.es.Search(i.es.Search.WithContext(c), i.es.Search.WithIndex(i.index), i.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source articleDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Article, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.article())
	}
	return out, nil
}
