package xing

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/util"
)

type Config struct {
	Terms    []string
	MaxTerms int
	MaxCards int
	Location string // e.g. "Deutschland"
}

type Source struct {
	cfg Config
	cls *classify.Classifier
	lim *util.HostLimiter
}

func New(cfg Config, cls *classify.Classifier, lim *util.HostLimiter) *Source {
	return &Source{cfg: cfg, cls: cls, lim: lim}
}

func (s *Source) Name() string { return "xing" }

func (s *Source) Fetch(ctx context.Context, b browser.Browser) ([]scrape.Posting, error) {
	var out []scrape.Posting
	for _, term := range scrape.BoundTerms(s.cfg.Terms, s.cfg.MaxTerms) {
		u := s.searchURL(term)
		if err := s.lim.WaitURL(ctx, u); err != nil {
			return out, err
		}
		page, err := b.Load(ctx, u, browser.LoadOptions{
			WaitVisible: `div[data-qa="job-listing"]`,
		})
		if err != nil {
			log.Printf("[xing] term %q: %v", term, err)
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
	q.Set("radius", "100")
	return "https://www.xing.com/jobs/search?" + q.Encode()
}

func (s *Source) Collect(page *browser.Page) []scrape.Posting {
	cards := page.FindAll(`div[data-qa="job-listing"] article`)
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
	title, err := card.Text("h2 a")
	if err != nil {
		return scrape.Posting{}, false
	}
	if !s.cls.IsRelevant(title) {
		return scrape.Posting{}, false
	}
	link, err := card.Attr("h2 a", "href")
	if err != nil {
		return scrape.Posting{}, false
	}
	if strings.HasPrefix(link, "/") {
		link = "https://www.xing.com" + link
	}
	company, err := card.Text("h3 a")
	if err != nil {
		return scrape.Posting{}, false
	}
	location, err := card.Text(`div[data-qa="job-listing-location"]`)
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
		Source:     "XING",
	}, true
}
