package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/scrape"
)

// Ledger is the slice of the dedup store the pipeline needs.
type Ledger interface {
	Connect(ctx context.Context) error
	FilterAndSave(ctx context.Context, candidates []scrape.Posting) (int, error)
}

// Runner wires one run of the pipeline: acquire browser, connect store,
// scrape each source, dedup-and-save once, release browser.
type Runner struct {
	NewBrowser func(ctx context.Context) (browser.Browser, error)
	Ledger     Ledger
	Sources    []scrape.Source
	Lock       *flock.Flock // optional; a held lock skips the run
}

// RunOnce executes one full scrape-filter-persist pass. Errors never
// escape the run boundary: fatal conditions end this run only, a broken
// source is skipped, and the browser is released on every exit path.
func (r *Runner) RunOnce(ctx context.Context) {
	runID := uuid.NewString()[:8]
	start := time.Now()
	log.Printf("[run %s] starting", runID)
	defer func() {
		log.Printf("[run %s] finished in %s", runID, time.Since(start).Round(time.Millisecond))
	}()

	if r.Lock != nil {
		ok, err := r.Lock.TryLock()
		if err != nil {
			log.Printf("[run %s] run lock: %v", runID, err)
			return
		}
		if !ok {
			log.Printf("[run %s] another run is in progress, skipping", runID)
			return
		}
		defer func() { _ = r.Lock.Unlock() }()
	}

	b, err := r.NewBrowser(ctx)
	if err != nil {
		// fatal for the run: nothing can be gathered without the fetcher
		log.Printf("[run %s] browser acquisition failed: %v", runID, err)
		return
	}
	defer func() {
		if cerr := b.Close(); cerr != nil {
			log.Printf("[run %s] browser release: %v", runID, cerr)
		}
	}()

	if err := r.Ledger.Connect(ctx); err != nil {
		log.Printf("[run %s] store connection failed: %v", runID, err)
		return
	}

	var all []scrape.Posting
	for _, src := range r.Sources {
		found, err := src.Fetch(ctx, b)
		if err != nil {
			log.Printf("[run %s] source %s failed: %v", runID, src.Name(), err)
			continue
		}
		log.Printf("[run %s] source %s found %d postings", runID, src.Name(), len(found))
		all = append(all, found...)
	}

	added, err := r.Ledger.FilterAndSave(ctx, all)
	if err != nil {
		log.Printf("[run %s] save failed: %v", runID, err)
		return
	}
	log.Printf("[run %s] %d candidates, %d new", runID, len(all), added)
}
