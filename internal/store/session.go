package store

import "context"

// Header is the fixed header row of the postings table, shared by every
// backend so persisted history stays portable between them.
var Header = []string{"Added At", "Title", "Company", "Location", "Languages", "Link", "Posted", "Source"}

// LinkColumn is the index of the link column within Header (column F on a
// spreadsheet). The link is the dedup identity key.
const LinkColumn = 5

// Session is a connection to one persistent tabular store. ReadAllRows
// returns every row in insertion order, header row included.
type Session interface {
	GetOrCreateTable(ctx context.Context, name string, header []string) error
	ReadAllRows(ctx context.Context) ([][]string, error)
	AppendRows(ctx context.Context, rows [][]string) error
	Close() error
}
