package report

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestGetText(t *testing.T) {
	doc := mustDoc(t, `<div id="a">  hello   world
	</div><div id="b"></div>`)

	tests := []struct {
		name string
		sel  *goquery.Selection
		def  string
		want string
	}{
		{"collapses whitespace", doc.Find("#a"), "x", "hello world"},
		{"empty node returns default", doc.Find("#b"), "N/A", "N/A"},
		{"missing node returns default", doc.Find("#missing"), "N/A", "N/A"},
		{"nil selection returns default", nil, "fallback", "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetText(tt.sel, tt.def))
		})
	}
}

func TestGetAttr(t *testing.T) {
	doc := mustDoc(t, `<a id="l" href=" https://example.com ">x</a><a id="m">y</a>`)

	assert.Equal(t, "https://example.com", GetAttr(doc.Find("#l"), "href", "N/A"))
	assert.Equal(t, "N/A", GetAttr(doc.Find("#m"), "href", "N/A"))
	assert.Equal(t, "N/A", GetAttr(nil, "href", "N/A"))
	assert.Equal(t, "N/A", GetAttr(doc.Find("#missing"), "href", "N/A"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c "))
	assert.Equal(t, "", CleanText("   \n "))
}
