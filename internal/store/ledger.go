package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"jobscout-engine/internal/scrape"
)

// Ledger tracks every posting link already persisted and appends new
// postings to the underlying Session. The known-links set is loaded once
// at Connect, grown in memory as batches are accepted, and rebuilt from
// the store on the next process start; the store stays the source of
// truth.
type Ledger struct {
	session Session
	table   string
	known   map[string]struct{}
}

func NewLedger(session Session, table string) *Ledger {
	return &Ledger{
		session: session,
		table:   table,
		known:   make(map[string]struct{}),
	}
}

// Connect gets or creates the postings table and loads the link column of
// the full persisted history.
func (l *Ledger) Connect(ctx context.Context) error {
	if err := l.session.GetOrCreateTable(ctx, l.table, Header); err != nil {
		return fmt.Errorf("get or create table: %w", err)
	}
	if err := l.loadKnownLinks(ctx); err != nil {
		return fmt.Errorf("load known links: %w", err)
	}
	return nil
}

func (l *Ledger) loadKnownLinks(ctx context.Context) error {
	rows, err := l.session.ReadAllRows(ctx)
	if err != nil {
		return err
	}
	if len(rows) <= 1 {
		return nil
	}
	// Skip the header row. Rows too short to reach the link column are
	// tolerated; they just contribute nothing.
	for _, row := range rows[1:] {
		if len(row) <= LinkColumn {
			continue
		}
		if link := strings.TrimSpace(row[LinkColumn]); link != "" {
			l.known[link] = struct{}{}
		}
	}
	log.Printf("[store] loaded %d known links", len(l.known))
	return nil
}

// Seen reports whether a link is already in the known set.
func (l *Ledger) Seen(link string) bool {
	_, ok := l.known[link]
	return ok
}

// FilterAndSave appends every candidate whose link is not yet known, in
// one batch, and returns how many were saved. The set grows as candidates
// are staged, so duplicates within the same batch collapse to one row.
// Zero new postings is a normal outcome.
func (l *Ledger) FilterAndSave(ctx context.Context, candidates []scrape.Posting) (int, error) {
	var rows [][]string
	for _, p := range candidates {
		if _, ok := l.known[p.Link]; ok {
			continue
		}
		rows = append(rows, []string{
			time.Now().Format("2006-01-02 15:04"),
			p.Title,
			p.Company,
			p.Location,
			strings.Join(p.Languages, ", "),
			p.Link,
			p.DatePosted,
			p.Source,
		})
		l.known[p.Link] = struct{}{}
	}
	if len(rows) == 0 {
		log.Printf("[store] no new postings to save")
		return 0, nil
	}
	if err := l.session.AppendRows(ctx, rows); err != nil {
		return 0, fmt.Errorf("append %d rows: %w", len(rows), err)
	}
	log.Printf("[store] saved %d new postings", len(rows))
	return len(rows), nil
}
