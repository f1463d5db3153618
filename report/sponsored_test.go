package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSponsored(t *testing.T) {
	doc := mustDoc(t, `
<table id="tbl_ads_rank"><tbody>
<tr>
  <td>
    <a class="ext" href="https://maps.google.com/?ludocid=777">Ad Biz</a>
    <div class="rating-container" title="3.8 out of 5"></div><span>(4)</span>
  </td>
  <td>14</td>
</tr>
<tr>
  <td><a class="ext">No Link Biz</a></td>
  <td>2</td>
</tr>
</tbody></table>`)

	got := ParseSponsored(doc)
	require.Len(t, got, 2)

	assert.Equal(t, "Ad Biz", got[0].Name)
	assert.Equal(t, "3.8", got[0].Rating)
	assert.Equal(t, "4", got[0].Reviews)
	assert.Equal(t, "3.8 (4)", got[0].Display)
	assert.Equal(t, "14", got[0].SeenCount)
	assert.Equal(t, "https://maps.google.com/?ludocid=777", got[0].MapURL)
	assert.Equal(t, "777", got[0].CID)

	assert.Equal(t, "No Link Biz", got[1].Name)
	assert.Equal(t, NotAvailable, got[1].Rating)
	assert.Equal(t, "2", got[1].SeenCount)
	assert.Equal(t, NotAvailable, got[1].MapURL)
	assert.Equal(t, NotAvailable, got[1].CID)
}

func TestParseSponsoredAbsentTable(t *testing.T) {
	assert.Empty(t, ParseSponsored(mustDoc(t, `<p>organic only</p>`)))
}
