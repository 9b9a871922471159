package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderArticlePublished(t *testing.T) {
	data := NewArticlePublishedData("", "https://blog.example.com/", "reader@example.com", "a1",
		"Grid <Layout>", "A guide", WithAuthor("Sarah Johnson"))

	subject, text, html, err := Render(ArticlePublished, data)
	require.NoError(t, err)
	require.Equal(t, "New on the blog: Grid <Layout>", subject)
	require.Contains(t, text, "https://blog.example.com/articles/a1")
	require.Contains(t, html, "Grid &lt;Layout&gt;")
	require.NotContains(t, html, "<Layout>")
}

func TestFuncMapOnlyHasUsedHelpers(t *testing.T) {
	funcs := baseFuncs()
	require.Len(t, funcs, 1)
	require.Contains(t, funcs, "default")
}
