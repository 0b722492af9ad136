package glassdoor

import (
	"context"
	"fmt"
	"log"
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
}

type Source struct {
	cfg Config
	cls *classify.Classifier
	lim *util.HostLimiter
}

func New(cfg Config, cls *classify.Classifier, lim *util.HostLimiter) *Source {
	return &Source{cfg: cfg, cls: cls, lim: lim}
}

func (s *Source) Name() string { return "glassdoor" }

func (s *Source) Fetch(ctx context.Context, b browser.Browser) ([]scrape.Posting, error) {
	var out []scrape.Posting
	for _, term := range scrape.BoundTerms(s.cfg.Terms, s.cfg.MaxTerms) {
		u := searchURL(term)
		if err := s.lim.WaitURL(ctx, u); err != nil {
			return out, err
		}
		page, err := b.Load(ctx, u, browser.LoadOptions{
			WaitVisible: "ul.JobsList_jobsList__lqjTr",
			// onetrust consent overlay blocks the list on first visit
			Dismiss: "#onetrust-accept-btn-handler",
		})
		if err != nil {
			log.Printf("[glassdoor] term %q: %v", term, err)
			continue
		}
		out = append(out, s.Collect(page)...)
	}
	return out, nil
}

// searchURL builds Glassdoor's slug-style search path. The KO offsets
// encode where the keyword sits inside the slug.
func searchURL(term string) string {
	slug := strings.ReplaceAll(term, " ", "-")
	return fmt.Sprintf(
		"https://www.glassdoor.de/Job/germany-%s-jobs-SRCH_IL.0,7_IN96_KO8,%d.htm?fromAge=7",
		slug, 8+len(slug),
	)
}

func (s *Source) Collect(page *browser.Page) []scrape.Posting {
	cards := page.FindAll("li.JobsList_jobListItem__JBBUV")
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
	title, err := card.Text(`a[data-test="job-title"]`)
	if err != nil {
		return scrape.Posting{}, false
	}
	if !s.cls.IsRelevant(title) {
		return scrape.Posting{}, false
	}
	company, err := card.Text("div.EmployerProfile_employerInfo__d8uSE > span")
	if err != nil {
		return scrape.Posting{}, false
	}
	location, err := card.Text("div.JobCard_location__rCz3x")
	if err != nil {
		return scrape.Posting{}, false
	}
	link, err := card.Attr(`a[data-test="job-link"]`, "href")
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
		Source:     "Glassdoor",
	}, true
}
