package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFindAllAndElementLookups(t *testing.T) {
	page, err := NewPageFromHTML("https://example.com", `
<ul class="jobs">
  <li><h3>  First&nbsp; Title </h3><a href=" https://example.com/1 ">go</a></li>
  <li><h3>Second</h3></li>
</ul>`)
	require.NoError(t, err)

	items := page.FindAll("ul.jobs li")
	require.Len(t, items, 2)

	title, err := items[0].Text("h3")
	require.NoError(t, err)
	assert.Equal(t, "First Title", title, "text is whitespace-normalized")

	href, err := items[0].Attr("a", "href")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/1", href)

	_, err = items[1].Attr("a", "href")
	assert.Error(t, err, "missing element fails that element only")

	_, err = items[1].Text(".nope")
	assert.Error(t, err)

	assert.Empty(t, page.FindAll("table"))
}
