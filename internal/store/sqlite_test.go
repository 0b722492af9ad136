package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postings.db")
	sess, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sess.Close()

	ctx := context.Background()
	require.NoError(t, sess.GetOrCreateTable(ctx, "postings", Header))
	// idempotent
	require.NoError(t, sess.GetOrCreateTable(ctx, "postings", Header))

	rows, err := sess.ReadAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])

	err = sess.AppendRows(ctx, [][]string{
		{"2026-08-30 08:00", "Junior eHealth Analyst", "Acme", "Leipzig", "German", "https://a.example/1", "2026-08-30", "XING"},
		{"2026-08-30 08:00", "short row"},
	})
	require.NoError(t, err)

	rows, err = sess.ReadAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "https://a.example/1", rows[1][LinkColumn])
	assert.Equal(t, "", rows[2][LinkColumn], "short rows are padded")
}

func TestSQLiteSessionRejectsBadTableName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postings.db")
	sess, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sess.Close()

	err = sess.GetOrCreateTable(context.Background(), "postings; DROP TABLE x", Header)
	assert.Error(t, err)
}
