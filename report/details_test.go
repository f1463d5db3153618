package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetailedResults(t *testing.T) {
	doc := mustDoc(t, `
<div id="resultModal"><div class="results_body">
  <div class="bg-light panel-body">
    <span class="dot">5</span>
    <h5><a href="https://maps.google.com/?cid=42">Biz One</a></h5>
    <div class="rating-container" title="4.2 out of 5"></div><span>(9)</span>
    <div>12 High Street, Town</div>
  </div>
  <div class="bg-light panel-body">
    <h5>Biz Two</h5>
  </div>
</div></div>`)

	got := ParseDetailedResults(doc)
	require.Len(t, got, 2)

	assert.Equal(t, "5", got[0].Rank)
	assert.Equal(t, "Biz One", got[0].Name)
	assert.Equal(t, "4.2", got[0].Rating)
	assert.Equal(t, "9", got[0].Reviews)
	assert.Equal(t, "12 High Street, Town", got[0].Address)
	assert.Equal(t, "https://maps.google.com/?cid=42", got[0].MapURL)
	assert.Equal(t, "42", got[0].CID)

	assert.Equal(t, NotAvailable, got[1].Rank)
	assert.Equal(t, "Biz Two", got[1].Name)
	assert.Equal(t, NotAvailable, got[1].Rating)
	assert.Equal(t, NotAvailable, got[1].Address)
	assert.Equal(t, NotAvailable, got[1].MapURL)
	assert.Equal(t, NotAvailable, got[1].CID)
}

func TestParseDetailedResultsAbsentModal(t *testing.T) {
	assert.Empty(t, ParseDetailedResults(mustDoc(t, `<div class="bg-light panel-body"><h5>Stray</h5></div>`)))
}
