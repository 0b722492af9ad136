package scrape

import (
	"context"

	"jobscout-engine/internal/browser"
)

// Posting is one job listing normalized across sources. Link is the
// identity key: two postings with the same link are the same posting no
// matter what the other fields say.
type Posting struct {
	Title      string
	Company    string
	Location   string
	Languages  []string
	Link       string
	DatePosted string
	Source     string
}

// Source scrapes one job-listing site. Implementations run their search
// terms sequentially against the shared browser session and must never
// fail a whole page because one card refused to parse.
type Source interface {
	Name() string
	Fetch(ctx context.Context, b browser.Browser) ([]Posting, error)
}

// BoundTerms limits how many search terms a source burns per run. Hitting
// a site with the full catalog every run draws attention; max <= 0 means
// no bound.
func BoundTerms(terms []string, max int) []string {
	if max <= 0 || len(terms) <= max {
		return terms
	}
	return terms[:max]
}
