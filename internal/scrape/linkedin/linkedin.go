package linkedin

import (
	"context"
	"log"
	"net/url"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/util"
)

type Config struct {
	Terms    []string
	MaxTerms int // search terms per run, not the full catalog
	MaxCards int
	Location string // e.g. "Germany"
}

type Source struct {
	cfg Config
	cls *classify.Classifier
	lim *util.HostLimiter
}

func New(cfg Config, cls *classify.Classifier, lim *util.HostLimiter) *Source {
	return &Source{cfg: cfg, cls: cls, lim: lim}
}

func (s *Source) Name() string { return "linkedin" }

func (s *Source) Fetch(ctx context.Context, b browser.Browser) ([]scrape.Posting, error) {
	var out []scrape.Posting
	for _, term := range scrape.BoundTerms(s.cfg.Terms, s.cfg.MaxTerms) {
		u := s.searchURL(term)
		if err := s.lim.WaitURL(ctx, u); err != nil {
			return out, err
		}
		page, err := b.Load(ctx, u, browser.LoadOptions{
			// the results list renders before individual cards finish hydrating
			WaitVisible:  "ul.jobs-search__results-list",
			ScrollPasses: 3,
			ScrollPause:  2 * time.Second,
		})
		if err != nil {
			log.Printf("[linkedin] term %q: %v", term, err)
			continue
		}
		out = append(out, s.Collect(page)...)
	}
	return out, nil
}

func (s *Source) searchURL(term string) string {
	q := url.Values{}
	q.Set("keywords", term)
	q.Set("location", s.cfg.Location)
	q.Set("f_E", "1,2") // entry/associate experience tiers
	q.Set("position", "1")
	q.Set("pageNum", "0")
	return "https://www.linkedin.com/jobs/search?" + q.Encode()
}

// Collect pulls postings out of a loaded search page. A card that fails
// to yield every required field is skipped, never fatal.
func (s *Source) Collect(page *browser.Page) []scrape.Posting {
	cards := page.FindAll("li.jobs-search-results__list-item")
	if len(cards) > s.cfg.MaxCards {
		cards = cards[:s.cfg.MaxCards]
	}
	var out []scrape.Posting
	for _, card := range cards {
		if p, ok := s.extractCard(card); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Source) extractCard(card *browser.Element) (scrape.Posting, bool) {
	title, err := card.Text("h3.base-search-card__title")
	if err != nil {
		return scrape.Posting{}, false
	}
	if !s.cls.IsRelevant(title) {
		return scrape.Posting{}, false
	}
	company, err := card.Text("h4.base-search-card__subtitle")
	if err != nil {
		return scrape.Posting{}, false
	}
	location, err := card.Text("span.job-search-card__location")
	if err != nil {
		return scrape.Posting{}, false
	}
	link, err := card.Attr("a.base-card__full-link", "href")
	if err != nil {
		return scrape.Posting{}, false
	}
	return scrape.Posting{
		Title:      title,
		Company:    company,
		Location:   location,
		Languages:  s.cls.Languages(title),
		Link:       util.CanonicalURL(link),
		DatePosted: time.Now().Format("2006-01-02"),
		Source:     "LinkedIn",
	}, true
}
