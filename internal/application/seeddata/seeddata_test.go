package seeddata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

func TestArticles(t *testing.T) {
	got, err := Articles()
	require.NoError(t, err)
	require.Len(t, got, 3)

	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	require.Equal(t, []string{
		"Getting Started with Web Development",
		"Introduction to React Hooks",
		"CSS Grid Layout: A Complete Guide",
	}, titles)

	for _, a := range got {
		require.True(t, a.Published)
		require.NotEmpty(t, a.Content)
		require.LessOrEqual(t, len(a.Title), entity.TitleMaxLen)
		require.LessOrEqual(t, len(a.Description), entity.DescriptionMaxLen)
	}
	require.Equal(t, "2023-11-25", got[2].Date.Format("2006-01-02"))
	require.Equal(t, "Sarah Johnson", got[2].Author.Name)
}

func TestParseDefaultsAuthorImage(t *testing.T) {
	got, err := parse([]byte(`
- title: t
  description: d
  content: c
  coverImage: /c.jpg
  date: "2024-01-02"
  author:
    name: Someone
`))
	require.NoError(t, err)
	require.Equal(t, entity.DefaultAuthorImage, got[0].Author.Image)
	require.False(t, got[0].Published)
}

func TestParseBadDate(t *testing.T) {
	_, err := parse([]byte(`- {title: t, date: "15/11/2023"}`))
	require.Error(t, err)
}
