package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/scrape"
)

// fakeSession is an in-memory Session that records appends.
type fakeSession struct {
	rows    [][]string
	appends int
}

func newFakeSession() *fakeSession {
	return &fakeSession{rows: [][]string{Header}}
}

func (f *fakeSession) GetOrCreateTable(_ context.Context, _ string, _ []string) error { return nil }

func (f *fakeSession) ReadAllRows(_ context.Context) ([][]string, error) { return f.rows, nil }

func (f *fakeSession) AppendRows(_ context.Context, rows [][]string) error {
	f.rows = append(f.rows, rows...)
	f.appends++
	return nil
}

func (f *fakeSession) Close() error { return nil }

func posting(link string) scrape.Posting {
	return scrape.Posting{
		Title:      "Junior Health IT Consultant",
		Company:    "Acme Health",
		Location:   "Leipzig",
		Languages:  []string{"English"},
		Link:       link,
		DatePosted: "2026-08-30",
		Source:     "LinkedIn",
	}
}

func TestFilterAndSaveIsIdempotent(t *testing.T) {
	sess := newFakeSession()
	l := NewLedger(sess, "postings")
	require.NoError(t, l.Connect(context.Background()))

	batch := []scrape.Posting{posting("https://a.example/1"), posting("https://a.example/2")}

	added, err := l.FilterAndSave(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = l.FilterAndSave(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, sess.appends, "empty batch must not hit the store")
}

func TestFilterAndSaveDedupsWithinBatch(t *testing.T) {
	sess := newFakeSession()
	l := NewLedger(sess, "postings")
	require.NoError(t, l.Connect(context.Background()))

	dup := posting("https://a.example/same")
	added, err := l.FilterAndSave(context.Background(), []scrape.Posting{dup, dup, posting("https://a.example/other")})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Len(t, sess.rows, 3) // header + 2
}

func TestLoadKnownLinksToleratesShortRows(t *testing.T) {
	sess := newFakeSession()
	sess.rows = append(sess.rows,
		[]string{"2026-08-29 08:00", "old title"}, // malformed: no link column
		[]string{"2026-08-29 08:00", "t", "c", "l", "English", "https://a.example/known", "2026-08-29", "XING"},
		[]string{"2026-08-29 08:01", "t", "c", "l", "", ""}, // empty link cell
	)

	l := NewLedger(sess, "postings")
	require.NoError(t, l.Connect(context.Background()))

	assert.True(t, l.Seen("https://a.example/known"))
	assert.False(t, l.Seen(""))

	added, err := l.FilterAndSave(context.Background(), []scrape.Posting{posting("https://a.example/known")})
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}
