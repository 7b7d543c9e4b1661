package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_MarkdownLink(t *testing.T) {
	result := Extract("check [the trailer](https://youtube.com/watch?v=abc) out")

	require.Len(t, result, 1)
	assert.Equal(t, "https://youtube.com/watch?v=abc", result[0].URL)
	assert.Equal(t, "the trailer", result[0].Text)
}

func TestExtract_BareURLDerivesLabelFromHost(t *testing.T) {
	result := Extract("see https://www.imdb.com/title/tt0903747/ for details")

	require.Len(t, result, 1)
	assert.Equal(t, "https://www.imdb.com/title/tt0903747/", result[0].URL)
	assert.Equal(t, "imdb.com", result[0].Text)
}

func TestExtract_MarkdownTakesPriorityOverBareMatch(t *testing.T) {
	// The bare URL pattern also matches the URL inside the markdown link;
	// it must not be reported twice.
	result := Extract("[MyAnimeList](https://myanimelist.net/anime/5114)")

	require.Len(t, result, 1)
	assert.Equal(t, "MyAnimeList", result[0].Text)
}

func TestExtract_PreservesOffsetOrder(t *testing.T) {
	text := "first https://a.example.com then [b](https://b.example.com) and https://c.example.com"
	result := Extract(text)

	require.Len(t, result, 3)
	assert.Equal(t, "https://a.example.com", result[0].URL)
	assert.Equal(t, "https://b.example.com", result[1].URL)
	assert.Equal(t, "https://c.example.com", result[2].URL)
}

func TestExtract_TrimsTrailingPunctuation(t *testing.T) {
	result := Extract("watch it here: https://netflix.com/title/80192098.")

	require.Len(t, result, 1)
	assert.Equal(t, "https://netflix.com/title/80192098", result[0].URL)
}

func TestExtract_EmptyAndPlainText(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("no links in here at all"))
}

func TestExtract_MalformedURLFallsBackToRawLabel(t *testing.T) {
	result := Extract("broken http://%zz.example/path here")

	require.Len(t, result, 1)
	assert.Equal(t, result[0].URL, result[0].Text)
}
